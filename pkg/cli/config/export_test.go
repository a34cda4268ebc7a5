package config

// NewLLMForTest creates an LLM config for testing purposes
func NewLLMForTest(provider, openaiAPIKey, geminiProject string) *LLM {
	return &LLM{
		provider:       provider,
		openaiAPIKey:   openaiAPIKey,
		openaiModel:    DefaultOpenAIModel,
		geminiProject:  geminiProject,
		geminiLocation: "us-central1",
	}
}

// NewNotionForTest creates a Notion config for testing purposes
func NewNotionForTest(token, databaseID string) *Notion {
	return &Notion{token: token, databaseID: databaseID}
}

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel string) *Slack {
	return &Slack{botToken: botToken, channel: channel}
}

// NewSearchForTest creates a search config for testing purposes
func NewSearchForTest(apiKey, engineID string) *Search {
	return &Search{apiKey: apiKey, engineID: engineID}
}

// NewAppForTest creates an App config for testing purposes
func NewAppForTest(path string) *App {
	return &App{path: path}
}
