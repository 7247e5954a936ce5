// Package agent defines the declarative agent configurations and the
// runtime capability that executes them against a language-model
// provider. Agents are plain data; all model behavior lives behind the
// Runtime interface.
package agent

// Config describes one agent for the runtime: who it is, what it is
// trying to do, and the persona that steers its tone.
type Config struct {
	Role      string
	Goal      string
	Backstory string
}

// EmailReader returns the agent specialized in reading and understanding emails.
func EmailReader() Config {
	return Config{
		Role: "Email Reader",
		Goal: "Read and analyze emails to extract key information, sender details, subject, and content",
		Backstory: "You are an expert email analyst with years of experience " +
			"in understanding email communications. You excel at extracting important " +
			"information from emails, identifying the sender's intent, and summarizing " +
			"the key points that need to be addressed in a response.",
	}
}

// DraftGenerator returns the agent specialized in generating professional email drafts.
func DraftGenerator() Config {
	return Config{
		Role: "Email Draft Writer",
		Goal: "Generate professional, clear, and appropriate email draft responses based on the original email content",
		Backstory: "You are a professional email communication expert with extensive " +
			"experience in crafting clear, concise, and professional email responses. " +
			"You understand tone, context, and the importance of addressing all points " +
			"raised in the original email while maintaining professionalism.",
	}
}
