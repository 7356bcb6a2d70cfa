package domain

// User is a single search result record
type User struct {
	ID         int64
	Login      string // display name
	AvatarURL  string // avatar reference
	ProfileURL string // profile link
}

// SearchStatus is the lifecycle state of the search controller
type SearchStatus int

const (
	StatusIdle SearchStatus = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s SearchStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
