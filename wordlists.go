package textprep

import (
	"strings"

	"golang.org/x/text/language"
)

// WordLists supplies the per-language vocabularies that word removal draws
// from. Implementations return surface forms as stored; the composer escapes
// them before building a pattern.
type WordLists interface {
	IndefiniteArticles(lang language.Tag) []string
	DefiniteArticles(lang language.Tag) []string
	Prepositions(lang language.Tag) []string
	Pronouns(lang language.Tag) []string
	Stopwords(lang language.Tag) []string
}

type wordList struct {
	indefinite   []string
	definite     []string
	prepositions []string
	pronouns     []string
	stopwords    []string
}

// BuiltinWordLists serves the lists bundled with the package, keyed by base
// language (en, es, fr, de). Unknown languages yield empty lists.
type BuiltinWordLists struct {
	lists map[language.Base]*wordList
}

// NewBuiltinWordLists returns the bundled provider.
func NewBuiltinWordLists() *BuiltinWordLists {
	return &BuiltinWordLists{lists: map[language.Base]*wordList{
		language.MustParseBase("en"): english,
		language.MustParseBase("es"): spanish,
		language.MustParseBase("fr"): french,
		language.MustParseBase("de"): german,
	}}
}

// Supports reports whether lists exist for the base language of lang.
func (b *BuiltinWordLists) Supports(lang language.Tag) bool {
	lb, ok := base(lang)
	if !ok {
		return false
	}
	_, ok = b.lists[lb]
	return ok
}

func (b *BuiltinWordLists) IndefiniteArticles(lang language.Tag) []string {
	return b.get(lang).indefinite
}

func (b *BuiltinWordLists) DefiniteArticles(lang language.Tag) []string {
	return b.get(lang).definite
}

func (b *BuiltinWordLists) Prepositions(lang language.Tag) []string {
	return b.get(lang).prepositions
}

func (b *BuiltinWordLists) Pronouns(lang language.Tag) []string {
	return b.get(lang).pronouns
}

func (b *BuiltinWordLists) Stopwords(lang language.Tag) []string {
	return b.get(lang).stopwords
}

func (b *BuiltinWordLists) get(lang language.Tag) *wordList {
	if lb, ok := base(lang); ok {
		if wl, ok := b.lists[lb]; ok {
			return wl
		}
	}
	return &wordList{}
}

// base returns the base language of lang. Tags whose base is only guessed,
// such as und, report false: they get no word lists and no stemmer.
func base(lang language.Tag) (language.Base, bool) {
	b, conf := lang.Base()
	if lang == language.Und || conf < language.High {
		return b, false
	}
	return b, true
}

var english = &wordList{
	indefinite: strings.Fields(`a an`),
	definite:   strings.Fields(`the`),
	prepositions: strings.Fields(`
	aboard about above across after against along amid among anti around as at
	before behind below beneath beside besides between beyond but by concerning
	considering despite down during except excepting excluding following for
	from in inside into like minus near of off on onto opposite outside over
	past per plus regarding round save since than through to toward towards
	under underneath unlike until up upon versus via with within without`),
	pronouns: strings.Fields(`
	i me my mine myself you your yours yourself yourselves he him his himself
	she her hers herself it its itself we us our ours ourselves they them their
	theirs themselves`),
	// Common English function words.
	stopwords: strings.Fields(`
	a about above across after afterwards again against all almost alone along
	already also although always am among amongst amount an and another any
	anyhow anyone anything anyway anywhere are around as at back be became
	because become becomes becoming been before beforehand behind being below
	beside besides between beyond bill both bottom but by call can cannot cant
	co con could couldnt cry de describe detail do done down due during each eg
	eight either eleven else elsewhere empty enough etc even ever every
	everyone everything everywhere except few fifteen fill find fire first five
	for former formerly forty found four from front full further get give go
	had has hasnt have he hence her here hereafter hereby herein hereupon hers
	herself him himself his how however hundred ie if in inc indeed interest
	into is it its itself keep last latter latterly least less ltd made many
	may me meanwhile might mill mine more moreover most mostly move much must
	my myself name namely neither never nevertheless next nine no nobody none
	noone nor not nothing now nowhere of off often on once one only onto or
	other others otherwise our ours ourselves out over own part per perhaps
	please put rather re same see seem seemed seeming seems serious several she
	should show side since sincere six sixty so some somehow someone something
	sometime sometimes somewhere still such system take ten than that the their
	them themselves then thence there thereafter thereby therefore therein
	thereupon these they thin third this those though three through throughout
	thru thus to together too top toward towards twelve twenty two un under
	until up upon us very via was we well were what whatever when whence
	whenever where whereafter whereas whereby wherein whereupon wherever
	whether which while whither who whoever whole whom whose why will with
	within without would yet you your yours yourself yourselves`),
}

var spanish = &wordList{
	indefinite: strings.Fields(`un una unos unas`),
	definite:   strings.Fields(`el la los las lo`),
	prepositions: strings.Fields(`
	a ante bajo cabe con contra de desde durante en entre hacia hasta mediante
	para por según sin so sobre tras versus vía`),
	pronouns: strings.Fields(`
	yo me mí tú te ti él ella ello nosotros nosotras vosotros vosotras ellos
	ellas les le se usted ustedes`),
	stopwords: strings.Fields(`
	de la que el en y a los del se las por un para con no una su al lo como más
	pero sus le ya o este sí porque esta entre cuando muy sin sobre también me
	hasta hay donde quien desde todo nos durante todos uno les ni contra otros
	ese eso ante ellos e esto mí antes algunos qué unos yo otro otras otra él
	tanto esa estos mucho quienes nada muchos cual poco ella estar estas`),
}

var french = &wordList{
	indefinite: strings.Fields(`un une des`),
	definite:   strings.Fields(`le la les l`),
	prepositions: strings.Fields(`
	à après avant avec chez contre dans de depuis derrière dès devant durant en
	entre envers hors jusque malgré par parmi pendant pour sans selon sous sur
	vers`),
	pronouns: strings.Fields(`
	je me moi tu te toi il elle lui nous vous ils elles leur eux se soi on`),
	stopwords: strings.Fields(`
	au aux avec ce ces dans de des du elle en et eux il je la le leur lui ma
	mais me même mes moi mon ne nos notre nous on ou par pas pour qu que qui sa
	se ses son sur ta te tes toi ton tu un une vos votre vous c d j l à m n s t
	y été étée étées étés étant suis es est sommes êtes sont serai seras sera`),
}

var german = &wordList{
	indefinite: strings.Fields(`ein eine einer eines einem einen`),
	definite:   strings.Fields(`der die das des dem den`),
	prepositions: strings.Fields(`
	ab an auf aus außer bei bis durch entlang für gegen gegenüber hinter in mit
	nach neben ohne seit trotz über um unter von vor während wegen zu zwischen`),
	pronouns: strings.Fields(`
	ich mich mir du dich dir er ihn ihm sie es wir uns ihr euch ihnen`),
	stopwords: strings.Fields(`
	aber alle als also am an auch auf aus bei bin bis bist da damit dann der
	den des dem die das dass du er es ein eine einem einen einer eines für hat
	hatte ich ihr im in ist ja kein mit nach nicht noch nun nur oder sich sie
	sind so über um und uns von vor war was weil wenn wie wir wird zu zum zur`),
}
