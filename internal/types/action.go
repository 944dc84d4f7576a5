package types

type Action string

const (
	ActionMarkReview   Action = "mark_review"
	ActionUnmarkReview Action = "unmark_review"
	ActionDelete       Action = "delete"
	ActionArchive      Action = "archive"
	ActionToggle       Action = "toggle"
	ActionAdd          Action = "add"
)

// Destructive reports whether the action needs user confirmation first.
func (a Action) Destructive() bool {
	return a == ActionDelete || a == ActionArchive
}

func (a Action) Bulk() bool {
	return a == ActionMarkReview || a == ActionUnmarkReview
}

func (a Action) Verb() string {
	switch a {
	case ActionMarkReview:
		return "mark for review"
	case ActionUnmarkReview:
		return "clear review flag"
	case ActionDelete:
		return "delete"
	case ActionArchive:
		return "archive"
	case ActionToggle:
		return "toggle"
	case ActionAdd:
		return "add"
	default:
		return string(a)
	}
}
