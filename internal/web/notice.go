// AngelaMos | 2026
// notice.go

package web

// Notices travel across redirects as a short code in the query string.
const (
	noticeRegistered   = "registered"
	noticeUserExists   = "user_exists"
	noticeInvalidCreds = "invalid_credentials"
	noticeInvalidInput = "invalid_input"
	noticeWelcome      = "welcome"
	noticeLogged       = "logged"
	noticeAlready      = "already_logged"
	noticeNoHabits     = "no_habits"
	noticeLoggedOut    = "logged_out"
)

// Side notices belong to the login and register panel.
type Notice struct {
	Kind    string
	Message string
	Side    bool
}

var notices = map[string]Notice{
	noticeRegistered:   {"success", "Registered successfully! Please login.", true},
	noticeUserExists:   {"error", "User already exists.", true},
	noticeInvalidCreds: {"error", "Invalid credentials.", true},
	noticeInvalidInput: {"error", "Please enter a valid email and password.", true},
	noticeLogged:       {"success", "Thanks for logging your green actions! 🌎", false},
	noticeAlready:      {"info", "You've already submitted for today. Come back tomorrow!", false},
	noticeNoHabits:     {"error", "Select at least one habit.", false},
	noticeLoggedOut:    {"info", "You have been logged out.", true},
}

// lookupNotice resolves a code. The welcome notice needs the email.
func lookupNotice(code, email string) *Notice {
	if code == noticeWelcome && email != "" {
		return &Notice{Kind: "success", Message: "Welcome " + email + "!", Side: true}
	}
	n, ok := notices[code]
	if !ok {
		return nil
	}
	return &n
}
