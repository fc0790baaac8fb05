package game

// quotes are shown on the death screen, one picked per death.
var quotes = []string{
	"Every master was once a disaster. Your second chance is your opportunity to shine!",
	"Failure is not the opposite of success, it's part of success. Try again with wisdom!",
	"The comeback is always stronger than the setback. You've got this!",
	"Success is not final, failure is not fatal. It's the courage to continue that counts.",
	"A second chance doesn't mean you're weak. It means you're strong enough to try again.",
	"Every expert was once a beginner. Every pro was once an amateur. Keep going!",
	"Your greatest glory lies not in never falling, but in rising every time you fall.",
	"Mistakes are proof that you are trying. Learn, adapt, and conquer!",
	"The phoenix rises from the ashes stronger than before. This is your moment!",
	"Champions are made from something deep inside: the will to win, the will to try again.",
}
