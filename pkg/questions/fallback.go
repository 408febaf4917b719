package questions

import (
	"fmt"
	"strings"
)

// fallbackTable holds credential-independent question sets, matched by
// case-insensitive substring against the technology name.
var fallbackTable = []struct {
	key       string
	questions []string
}{
	{"python", []string{
		"What are the key differences between lists and tuples in Python?",
		"How does Python handle memory management?",
		"Explain the concept of decorators in Python.",
		"What are some common use cases for generators?",
	}},
	{"javascript", []string{
		"Explain the event loop in JavaScript.",
		"What are the differences between let, const, and var?",
		"How does prototypal inheritance work in JavaScript?",
		"What are promises and how do they work?",
	}},
	{"react", []string{
		"What is the virtual DOM and how does it work?",
		"Explain the component lifecycle methods.",
		"What are hooks and how do they differ from class components?",
		"How would you optimize React application performance?",
	}},
	{"node.js", []string{
		"How does Node.js handle asynchronous operations?",
		"Explain the event-driven architecture of Node.js.",
		"What are streams and how are they used?",
		"How would you handle memory leaks in Node.js?"},
	},
}

// FallbackQuestions returns the fixed question set for a known technology,
// or four generic questions templated on the technology name.
func FallbackQuestions(technology string) []string {
	lower := strings.ToLower(technology)
	for _, entry := range fallbackTable {
		if strings.Contains(lower, entry.key) {
			questions := make([]string, len(entry.questions))
			copy(questions, entry.questions)
			return questions
		}
	}

	return []string{
		fmt.Sprintf("What experience do you have with %s?", technology),
		fmt.Sprintf("Describe a challenging project you built using %s.", technology),
		fmt.Sprintf("What are the best practices for working with %s?", technology),
		fmt.Sprintf("How would you troubleshoot performance issues in %s?", technology),
	}
}
