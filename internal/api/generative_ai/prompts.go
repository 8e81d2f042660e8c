package generativeAI

import (
	"fmt"
	"strings"
)

// ApologyMessage is the chat reply used when the model cannot answer.
const ApologyMessage = "I apologize, I encountered an issue trying to respond. Please try again later."

// ClassNames are the only labels the classifier may return.
var ClassNames = []string{
	"Ancient Egyptian Writing Sample",
	"Anubis",
	"Eye of Horus",
	"Horus",
	"Isis",
	"Mummy",
	"Pyramids",
	"Scarab Beetle",
	"Sphinx",
	"Tutankhamun",
}

func DescribeArtifactPrompt(label string) string {
	return fmt.Sprintf("Describe this Egyptian artifact, person, or place: %s. "+
		"Explain it as if you're a friendly tour guide talking to a tourist in a simple and engaging way. "+
		"Please keep your description concise, no more than 100 words.", label)
}

func ImageQuestionPrompt(label, question string) string {
	return fmt.Sprintf("The user is asking about the image: %s. Question: %s", label, question)
}

func HorusPrompt(message, artifactName, artifactDescription string) string {
	return fmt.Sprintf("You are Horus AI, an expert on ancient Egyptian artifacts. "+
		"A user is asking about an artifact identified as '%s'. "+
		"Description: '%s'.\n\n"+
		"User: %s\n"+
		"Horus AI:", artifactName, artifactDescription, message)
}

func classifyPrompt() string {
	return "Classify this image into exactly one of the following classes: " +
		strings.Join(ClassNames, ", ") +
		". Reply with the class name only."
}
