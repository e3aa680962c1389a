package suggest

// wordBank holds the neutral themed words used as suggestion base tokens.
// Words are short enough to leave room for random decoration and carry no
// personal or account-related meaning. None of them appears in the
// heuristic wordlist, so a suggestion never scores worse for containing its
// own base token... with the exception of coincidental substrings, which
// the validity check catches anyway.
var wordBank = []string{
	"orbit", "cobalt", "harbor", "falcon", "ember", "sage", "vivid",
	"meadow", "quartz", "lantern", "breeze", "cinder", "drift", "fable",
	"glacier", "hollow", "indigo", "juniper", "kestrel", "lagoon",
	"mosaic", "nectar", "onyx", "prism", "quiver", "raven", "saffron",
	"thicket", "umber", "velvet", "willow", "zephyr",
}
