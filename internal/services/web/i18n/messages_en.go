package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Chrome
	message.SetString(lang, "app.title", "Sufni Suspension Telemetry")
	message.SetString(lang, "nav.sessions", "Sessions")
	message.SetString(lang, "nav.sign_in", "Sign in")
	message.SetString(lang, "nav.sign_out", "Sign out")
	message.SetString(lang, "nav.signed_in_as", "Signed in as %s")
	message.SetString(lang, "nav.lang_en", "English")
	message.SetString(lang, "nav.lang_pt_br", "Português (Brasil)")

	// Session list
	message.SetString(lang, "sessions.no_description", "No description")
	message.SetString(lang, "sessions.delete", "Delete")
	message.SetString(lang, "sessions.delete_confirm", "Delete session %s?")
	message.SetString(lang, "sessions.pick", "Select a session from the list.")

	// Session detail
	message.SetString(lang, "session.title", "%s | Session")
	message.SetString(lang, "session.name", "Name")
	message.SetString(lang, "session.description", "Description")
	message.SetString(lang, "session.recorded_at", "Recorded at")
	message.SetString(lang, "session.data_size", "%d bytes of processed data")
	message.SetString(lang, "session.save", "Save")
	message.SetString(lang, "session.saved", "Session saved.")

	// Login
	message.SetString(lang, "login.title", "Sign in")
	message.SetString(lang, "login.username", "Username")
	message.SetString(lang, "login.password", "Password")
	message.SetString(lang, "login.submit", "Sign in")
	message.SetString(lang, "login.invalid", "Invalid username or password.")
	message.SetString(lang, "password.wrong", "Wrong password.")
	message.SetString(lang, "password.insecure", "Password is not secure.")

	// Errors
	message.SetString(lang, "error.title", "Error")
	message.SetString(lang, "error.not_found", "The page you requested was not found.")
	message.SetString(lang, "error.forbidden", "Full access is required for this action.")
	message.SetString(lang, "error.unavailable", "The session store is unavailable.")
	message.SetString(lang, "error.internal", "Something went wrong.")
	message.SetString(lang, "error.name_required", "Session name is required.")
}
