package summary

// BuildUserPromptForTest exposes the prompt builder to tests
func BuildUserPromptForTest(input Input) string {
	return buildUserPrompt(input)
}
