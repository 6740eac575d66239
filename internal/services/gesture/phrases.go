package gesture

// Phrases фиксированный набор фраз, которыми имитируется распознавание.
var Phrases = []string{
	"Hello there!",
	"How are you today?",
	"Thank you so much",
	"I need help please",
	"Good morning",
	"See you later",
	"I'm happy",
	"Can you help me?",
	"Nice to meet you",
	"Have a great day",
}
