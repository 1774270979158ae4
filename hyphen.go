package translit

import "regexp"

// letters matches one rune of transliterated lowercase text, combining
// marks included.
const letters = `[а-щґії\x{012B}ӯ\x{0300}-\x{036F}]`

type compoundRule struct {
	re   *regexp.Regexp
	repl string
}

func compound(pattern string) compoundRule {
	return compoundRule{re: regexp.MustCompile(pattern), repl: "$1-$2"}
}

// compoundRules split well-known Sanskrit compounds with a hyphen.
var compoundRules = []compoundRule{
	// prefixes followed by any word
	compound(`(маха` + macron + `)(` + letters + `+)`),
	compound(`(ш` + acute + `рī)(` + letters + `+)`),
	compound(`(бгаґават)(` + letters + `+)`),

	compound(`(дгарма)(кшетре|ш` + acute + `а` + macron + `стра|йуддга)`),
	compound(`(кр` + dotBelow + `шн` + dotBelow + `а)(чаітанйа|према|бгакті|ліла` + macron + `)`),
	compound(`(куру)(кшетре|ван` + dotAbove + `ш` + acute + `а)`),
	compound(`(па` + macron + `н` + dotBelow + `д` + dotBelow + `ава` + macron + `)(ш` + acute + `|н)`),

	// paired names
	compound(`(нітйа` + macron + `)(нанда)`),
	compound(`(ра` + macron + `ма)(чандра)`),
}

// AddCompoundHyphens inserts hyphens between the members of common
// compounds in transliterated text, e.g. "дгармакшетре" → "дгарма-кшетре".
func AddCompoundHyphens(text string) string {
	if text == "" {
		return ""
	}

	for _, rule := range compoundRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}

	return text
}
