// Package vkts implements the vkts command surface: argument structures,
// command runners over the user-data store, and error-to-message
// translation for the surrounding binary.
package vkts

// Args is the top-level CLI argument surface.
type Args struct {
	Data string `arg:"--data" help:"data directory (overrides $VKTS_DATA_PATH, default .vkts)"`

	Get     *GetCmd     `arg:"subcommand:get" help:"print the value at a field path"`
	Set     *SetCmd     `arg:"subcommand:set" help:"write a value at a field path"`
	Del     *DelCmd     `arg:"subcommand:del" help:"delete the value at a field path"`
	Drop    *DropCmd    `arg:"subcommand:drop" help:"deactivate every entry at a field path"`
	Active  *ActiveCmd  `arg:"subcommand:active" help:"print the active entry at a field path"`
	Init    *InitCmd    `arg:"subcommand:init" help:"create the data directory and default files"`
	Account *AccountCmd `arg:"subcommand:account" help:"manage accounts"`
	Univ    *UnivCmd    `arg:"subcommand:univ" help:"manage universities"`
	Email   *EmailCmd   `arg:"subcommand:email" help:"manage broadcast emails"`
	Group   *GroupCmd   `arg:"subcommand:group" help:"manage monitored groups"`
	Shell   *ShellCmd   `arg:"subcommand:shell" help:"interactive mode"`
}

// Description is printed by go-arg above the usage text.
func (Args) Description() string {
	return "vkts keeps local account, admin, and university data in path-addressed JSON documents."
}

// GetCmd prints the value at a field path, or "not found".
type GetCmd struct {
	Doc  string   `arg:"positional,required" help:"document: acc, adm, or univ"`
	Path []string `arg:"positional" help:"field path segments (decimal segments index sequences)"`
}

// SetCmd writes a value at a field path. When the target already holds a
// sequence the value is appended.
type SetCmd struct {
	Doc     string   `arg:"positional,required" help:"document: acc, adm, or univ"`
	Path    []string `arg:"positional" help:"field path segments"`
	Value   string   `arg:"-v,--value,required" help:"value as JSON, or a bare string"`
	Enforce bool     `arg:"-a,--ensure-active" help:"keep one sibling entry activated"`
}

// DelCmd deletes the value at a field path.
type DelCmd struct {
	Doc     string   `arg:"positional,required" help:"document: acc, adm, or univ"`
	Path    []string `arg:"positional" help:"field path segments"`
	Enforce bool     `arg:"-a,--ensure-active" help:"keep one sibling entry activated"`
}

// DropCmd deactivates every entry of the object at a field path.
type DropCmd struct {
	Doc  string   `arg:"positional,required" help:"document: acc, adm, or univ"`
	Path []string `arg:"positional" help:"field path segments"`
}

// ActiveCmd prints the key and body of the active entry at a field path.
type ActiveCmd struct {
	Doc  string   `arg:"positional,required" help:"document: acc, adm, or univ"`
	Path []string `arg:"positional" help:"field path segments"`
}

// InitCmd bootstraps the data directory and default document files.
type InitCmd struct{}

// ShellCmd starts the interactive readline loop.
type ShellCmd struct{}

// AccountCmd groups account management subcommands.
type AccountCmd struct {
	Add    *AccountAddCmd    `arg:"subcommand:add" help:"add an account under a provider"`
	Rm     *AccountRmCmd     `arg:"subcommand:rm" help:"remove an account"`
	Switch *AccountSwitchCmd `arg:"subcommand:switch" help:"make an account the active one"`
	Show   *AccountShowCmd   `arg:"subcommand:show" help:"print accounts"`
}

// AccountAddCmd adds an account object under a provider.
type AccountAddCmd struct {
	Provider string `arg:"positional,required" help:"provider, e.g. vk, email, telegram"`
	Name     string `arg:"positional,required" help:"account identifier"`
	Activate bool   `arg:"--activate" help:"make this the active account for the provider"`
}

// AccountRmCmd removes an account, reactivating a sibling when needed.
type AccountRmCmd struct {
	Provider string `arg:"positional,required" help:"provider"`
	Name     string `arg:"positional,required" help:"account identifier"`
}

// AccountSwitchCmd moves the provider's activation to the named account.
type AccountSwitchCmd struct {
	Provider string `arg:"positional,required" help:"provider"`
	Name     string `arg:"positional,required" help:"account identifier"`
}

// AccountShowCmd prints one provider's accounts, or the whole document.
type AccountShowCmd struct {
	Provider string `arg:"positional" help:"provider (omit for all)"`
}

// UnivCmd groups university management subcommands.
type UnivCmd struct {
	Add    *UnivAddCmd    `arg:"subcommand:add" help:"add an institution"`
	Rm     *UnivRmCmd     `arg:"subcommand:rm" help:"remove an institution"`
	Switch *UnivSwitchCmd `arg:"subcommand:switch" help:"make an institution the active one"`
	Show   *UnivShowCmd   `arg:"subcommand:show" help:"print institutions"`
}

// UnivAddCmd adds an institution object.
type UnivAddCmd struct {
	Key      string `arg:"positional,required" help:"institution key"`
	Activate bool   `arg:"--activate" help:"make this the active institution"`
}

// UnivRmCmd removes an institution, reactivating a sibling when needed.
type UnivRmCmd struct {
	Key string `arg:"positional,required" help:"institution key"`
}

// UnivSwitchCmd moves the activation to the named institution.
type UnivSwitchCmd struct {
	Key string `arg:"positional,required" help:"institution key"`
}

// UnivShowCmd prints one institution, or the whole document.
type UnivShowCmd struct {
	Key string `arg:"positional" help:"institution key (omit for all)"`
}

// EmailCmd groups broadcast email subcommands.
type EmailCmd struct {
	Add  *EmailAddCmd  `arg:"subcommand:add" help:"add a broadcast email"`
	Rm   *EmailRmCmd   `arg:"subcommand:rm" help:"remove a broadcast email"`
	Show *EmailShowCmd `arg:"subcommand:show" help:"print broadcast emails"`
}

// EmailAddCmd appends an address to the broadcast list.
type EmailAddCmd struct {
	Addr string `arg:"positional,required" help:"email address"`
}

// EmailRmCmd removes an address from the broadcast list.
type EmailRmCmd struct {
	Addr string `arg:"positional,required" help:"email address"`
}

// EmailShowCmd prints the broadcast list.
type EmailShowCmd struct{}

// GroupCmd groups monitored-group subcommands.
type GroupCmd struct {
	Add  *GroupAddCmd  `arg:"subcommand:add" help:"add a monitored group"`
	Rm   *GroupRmCmd   `arg:"subcommand:rm" help:"remove a monitored group"`
	Show *GroupShowCmd `arg:"subcommand:show" help:"print monitored groups"`
}

// GroupAddCmd appends a group to the monitored list.
type GroupAddCmd struct {
	Name string `arg:"positional,required" help:"group name"`
}

// GroupRmCmd removes a group from the monitored list.
type GroupRmCmd struct {
	Name string `arg:"positional,required" help:"group name"`
}

// GroupShowCmd prints the monitored list.
type GroupShowCmd struct{}
