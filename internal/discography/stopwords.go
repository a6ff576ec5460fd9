package discography

// StopWords are excluded from unique-word counts and frequency rankings but
// still counted in raw word totals. Lyrics filler ("ooh", "yeah") and common
// contractions are included.
var StopWords = toSet([]string{
	"i", "me", "my", "mine", "myself",
	"you", "your", "yours", "yourself",
	"he", "him", "his", "she", "her", "hers",
	"we", "us", "our", "they", "them", "their",
	"it", "its",
	"a", "an", "the",
	"and", "but", "or", "so", "of", "to", "in", "on", "at", "by", "for", "with",
	"is", "am", "are", "was", "were", "be", "been", "being",
	"do", "does", "did", "done",
	"have", "has", "had", "having",
	"will", "would", "shall", "should", "can", "could", "may", "might", "must",
	"not", "no", "nor",
	"if", "then", "than", "that", "this", "these", "those",
	"up", "out", "down", "off", "over", "under",
	"from", "into", "about", "between", "through", "after", "before",
	"all", "each", "every", "both", "few", "some", "any", "most",
	"just", "like", "when", "what", "how", "where", "who", "which",
	"as", "more", "also", "here", "there", "very", "too",
	"oh", "ooh", "ah", "ahh", "na", "la", "dum", "mmm", "hmm", "yea", "yeah",
	"im", "i'm", "i've", "i'll", "i'd",
	"don't", "won't", "can't", "didn't", "doesn't", "isn't", "aren't", "wasn't", "weren't",
	"couldn't", "wouldn't", "shouldn't", "haven't", "hasn't", "hadn't",
	"it's", "that's", "there's", "here's", "what's", "who's",
	"you're", "you've", "you'll", "you'd",
	"he's", "he'd", "he'll", "she's", "she'd", "she'll",
	"we're", "we've", "we'll", "we'd",
	"they're", "they've", "they'll", "they'd",
	"got", "get", "go", "going", "gone", "come", "came",
	"know", "say", "said", "tell", "told",
	"see", "look", "make", "take", "give", "let",
	"now", "one", "two",
	"cause", "cuz", "'cause",
})

// ExplicitWords trigger explicit-content detection.
var ExplicitWords = []string{
	"shit", "fuck", "fucking", "bitch", "ass", "damn", "hell", "bullshit", "dick", "nigga", "nigger", "crap",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether a lowercase token is a stopword.
func IsStopWord(word string) bool {
	_, ok := StopWords[word]
	return ok
}
