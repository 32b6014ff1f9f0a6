// Package tables holds the closed-class heuristic vocabularies used by the
// analysis pipeline: stop words, entity anchor keywords, the technology
// vocabulary, E-E-A-T indicator weights, and the keyword filter lists.
//
// These are configuration data, not behavior. Each table carries a version
// constant so a table swap is visible in output provenance without touching
// any scoring logic. Loaders in pkg/semantic/config may replace individual
// tables from YAML; scoring packages only ever read them through a Tables
// value.
package tables

// Table versions. Bump when the corresponding table changes.
const (
	StopwordsVersion = "v1"
	AnchorsVersion   = "v1"
	EEATVersion      = "v1"
	FilterVersion    = "v1"
	TemplatesVersion = "v1"
)

// Tables bundles every closed-class list consumed by the pipeline.
// The zero value is not usable; start from Default().
type Tables struct {
	Stopwords []string

	OrganizationAnchors  []string
	LocationAnchors      []string
	ProductAnchors       []string
	TechnologyVocabulary []string
	HonorificPrefixes    []string

	ExpertiseIndicators         map[string]int
	ExperienceIndicators        map[string]int
	AuthoritativenessIndicators map[string]int
	TrustworthinessIndicators   map[string]int

	GenericBlocklist []string
	ConnectorWords   []string

	SynonymPairs     map[string]string
	ContentGapTopics []string
	QueryTemplates   []string
}

// Default returns the canonical v1 tables.
func Default() Tables {
	return Tables{
		Stopwords:            stopwords(),
		OrganizationAnchors:  organizationAnchors(),
		LocationAnchors:      locationAnchors(),
		ProductAnchors:       productAnchors(),
		TechnologyVocabulary: technologyVocabulary(),
		HonorificPrefixes:    honorificPrefixes(),

		ExpertiseIndicators:         expertiseIndicators(),
		ExperienceIndicators:        experienceIndicators(),
		AuthoritativenessIndicators: authoritativenessIndicators(),
		TrustworthinessIndicators:   trustworthinessIndicators(),

		GenericBlocklist: genericBlocklist(),
		ConnectorWords:   connectorWords(),

		SynonymPairs:     synonymPairs(),
		ContentGapTopics: contentGapTopics(),
		QueryTemplates:   queryTemplates(),
	}
}

// stopwords is the closed ~40-word list: articles, conjunctions, common
// pronouns, and forms of "be"/"have"/"do". Stop words may still appear
// medially inside retained phrases ("guide to marketing").
func stopwords() []string {
	return []string{
		"the", "a", "an",
		"and", "or", "but", "nor", "so", "yet",
		"for", "of", "to", "in", "on", "at", "by", "with", "from", "as",
		"it", "its", "this", "that", "these", "those",
		"they", "them", "their", "we", "our", "you", "your",
		"is", "am", "are", "was", "were", "be", "been", "being",
		"has", "have", "had",
		"do", "does", "did",
		"not", "will",
	}
}

func organizationAnchors() []string {
	return []string{
		"inc", "corp", "llc", "ltd", "company", "group",
		"foundation", "institute", "university", "agency", "association",
	}
}

func locationAnchors() []string {
	return []string{
		"city", "state", "county", "street", "avenue", "boulevard",
		"district", "valley", "island", "beach", "park",
	}
}

func productAnchors() []string {
	return []string{
		"pro", "plus", "max", "edition", "series", "suite",
		"platform", "app", "software", "toolkit",
	}
}

// technologyVocabulary is matched case-insensitively as a substring of the
// page content, so multi-word entries are allowed.
func technologyVocabulary() []string {
	return []string{
		"javascript", "typescript", "python", "golang", "rust",
		"react", "angular", "vue", "node.js", "django",
		"docker", "kubernetes", "terraform",
		"aws", "azure", "google cloud",
		"wordpress", "shopify", "salesforce", "hubspot",
		"mysql", "postgresql", "mongodb", "redis", "graphql",
		"tensorflow", "pytorch",
		"machine learning", "artificial intelligence", "blockchain",
	}
}

func honorificPrefixes() []string {
	return []string{"Dr", "Prof", "Mr", "Mrs", "Ms"}
}

// E-E-A-T indicator tables. Values are the points one matched indicator
// contributes to its axis; axes are capped at 100 by the scorer. A single
// canonical weight table per axis, versioned by EEATVersion.

func expertiseIndicators() map[string]int {
	return map[string]int{
		"expert":        10,
		"certified":     12,
		"phd":           15,
		"methodology":   8,
		"research":      8,
		"specialist":    10,
		"professional":  5,
		"accredited":    12,
		"qualification": 8,
		"in-depth":      4,
	}
}

func experienceIndicators() map[string]int {
	return map[string]int{
		"case study":          12,
		"case studies":        12,
		"years of experience": 15,
		"hands-on":            10,
		"we tested":           10,
		"real-world":          8,
		"firsthand":           10,
		"in practice":         5,
		"worked with":         6,
		"lessons learned":     8,
	}
}

func authoritativenessIndicators() map[string]int {
	return map[string]int{
		"according to":   8,
		"peer-reviewed":  15,
		"cited":          10,
		"published":      8,
		"award":          10,
		"recognized":     8,
		"official":       6,
		"study shows":    10,
		"research shows": 10,
		"industry leader": 8,
	}
}

func trustworthinessIndicators() map[string]int {
	return map[string]int{
		"privacy policy": 10,
		"contact":        5,
		"secure":         6,
		"guarantee":      8,
		"refund":         8,
		"transparent":    8,
		"verified":       10,
		"testimonial":    6,
		"disclaimer":     8,
		"last updated":   6,
	}
}

// genericBlocklist holds tokens too generic to anchor a primary keyword on
// their own. A candidate containing one survives only if another of its
// tokens is non-generic and at least 4 characters.
func genericBlocklist() []string {
	return []string{
		"thing", "things", "stuff", "good", "great", "nice",
		"really", "very", "much", "many", "more", "most",
		"some", "other", "before", "after", "here", "there",
		"also", "just", "ways", "time",
	}
}

// connectorWords do not count toward a candidate's two-token minimum.
func connectorWords() []string {
	return []string{"for", "with", "in", "on", "at", "by", "from", "to", "of", "about"}
}

// synonymPairs is the seed variant→canonical map behind the synonym
// relationship type. The lexicon expands it bidirectionally.
func synonymPairs() map[string]string {
	return map[string]string{
		"automobile": "car",
		"purchase":   "buy",
		"tutorial":   "guide",
		"affordable": "cheap",
		"quick":      "fast",
		"site":       "website",
		"image":      "picture",
		"search engine optimization": "seo",
	}
}

// contentGapTopics is the fixed checklist subtracted against heading
// coverage to surface missing sections.
func contentGapTopics() []string {
	return []string{
		"faq", "troubleshooting", "case studies", "pricing",
		"comparison", "alternatives", "best practices", "examples",
		"getting started", "reviews", "glossary", "common mistakes",
	}
}

// queryTemplates expand a topic into related queries. %s is the topic.
func queryTemplates() []string {
	return []string{
		"what is %s",
		"how to %s",
		"%s guide",
		"%s tips",
		"%s best practices",
	}
}
