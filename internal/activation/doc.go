// Package activation drives the Inactive/Active state machine for one
// interactive session.
//
//	Inactive --Activate--> Active
//	Active   --Activate--> Active    (deactivates first, handle kept)
//	Active   --Deactivate(preserve)--> Inactive
//	Inactive --Deactivate--> Inactive (no-op)
//
// Activation resolves the environment root and prompt label, hands the
// environment changes to environ.Toggler, and installs the prompt prefix
// through prompt.Manager unless VIRTUAL_ENV_DISABLE_PROMPT is set. Nothing
// inside a transition is fatal: config read failures fall back to defaults
// and prompt failures are logged and skipped.
package activation
