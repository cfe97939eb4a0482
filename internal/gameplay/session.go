package gameplay

// SessionState is the lifecycle of a single play-through. Loading lasts until
// the client reports its assets ready. Won is terminal; a replay is a fresh
// session, never a resume.
type SessionState string

const (
	StateLoading SessionState = "loading"
	StatePlaying SessionState = "playing"
	StateWon     SessionState = "won"
)

var defaultEncouragements = []string{
	"Amazing!",
	"Keep it up!",
	"So clever!",
	"Well done!",
	"Great catch!",
	"You're a star!",
}
