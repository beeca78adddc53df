// Package environ owns every mutation venvctl makes to environment
// variables.
//
// The Toggler is the only writer of PATH, PYTHONHOME, VIRTUAL_ENV,
// VIRTUAL_ENV_PROMPT and the _OLD_VIRTUAL_* bookkeeping variables. It works
// against the Environment interface so the same logic drives the real
// process environment (Process), an in-memory map (Map), or a recorder that
// turns the mutations into shell code (shell.Script).
//
// The pre-activation snapshot lives in the environment itself, using the
// same _OLD_VIRTUAL_* names as the stock venv activate scripts, so a later
// process can reload it with LoadState and undo the activation.
package environ
