package cli

// RunWithWriter is exported for testing command output
var RunWithWriter = run

// ReadForm is exported for testing
var ReadForm = readForm

// RunSubmit is exported for testing
var RunSubmit = runSubmit
