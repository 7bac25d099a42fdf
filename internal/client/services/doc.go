// Package services contains the application services of the gophsession
// client.
//
// Gate is the single owner of "who is logged in": it hydrates the session
// from the profile cache at startup, performs login and logout, and guards
// protected views. AccountService runs the settings-panel actions (profile
// save, password change, avatar upload, account deletion) against the
// account service and reflects their results into the gate's session.
//
// One Gate is created per running process and is passed down explicitly;
// there is no package-level session state.
package services
