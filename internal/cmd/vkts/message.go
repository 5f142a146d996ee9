package vkts

import (
	"errors"
	"fmt"

	apperrors "github.com/smurphik/vkts/internal/platform/errors"
)

// Message renders err as the single-line message the binary prints before
// exiting with code 1.
func Message(err error) string {
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) {
		return err.Error()
	}

	location := domainErr.Metadata["document"]
	if path := domainErr.Metadata["path"]; path != "" {
		location += " " + path
	}

	switch domainErr.Code {
	case apperrors.CodeTargetNotFound:
		return fmt.Sprintf("nothing to operate on at %s", location)
	case apperrors.CodeInvalidPath:
		if location == "" {
			return domainErr.Message
		}
		return fmt.Sprintf("invalid field path %s: %s", location, domainErr.Message)
	case apperrors.CodeNoActiveEntry:
		return fmt.Sprintf("no active entry in %s; add one first (vkts account add / vkts univ add --activate)", location)
	case apperrors.CodeNotActivatable:
		return fmt.Sprintf("entries under %s are not activatable objects", location)
	case apperrors.CodePersistence:
		if domainErr.Cause != nil {
			return fmt.Sprintf("%s: %v", domainErr.Message, domainErr.Cause)
		}
		return domainErr.Message
	}
	return domainErr.Message
}
