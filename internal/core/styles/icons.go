package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconPin       = "\U000F0403" // nf-md-pin
	IconCalendar  = ""     // nf-fa-calendar
	IconCheckList = ""     // nf-fa-tasks
	IconPaperclip = ""     // nf-fa-paperclip
	IconSearch    = ""     // nf-fa-search
	IconBoard     = "\U000F0B6A" // nf-md-view_column
)

// Notification icons
var (
	IconNotifyInfo    = "" // nf-fa-info_circle
	IconNotifySuccess = "" // nf-fa-check_circle
	IconNotifyWarning = "" // nf-fa-warning
	IconNotifyError   = "" // nf-fa-times_circle
)

// Checkbox glyphs for subtasks.
var (
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
)
