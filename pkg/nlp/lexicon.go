package nlp

import "regexp"

// intentPattern binds one intent to its surface forms per language and its
// destination route. Tables are package-level and never mutated after init;
// slices keep the declaration order because tie-breaks are
// first-surface-wins.
type intentPattern struct {
	intent   Intent
	route    string
	surfaces map[Language][]string
}

// basicPatterns are plain navigation keywords scored with Score.
var basicPatterns = []intentPattern{
	{
		intent: IntentNavigateHome,
		route:  "/",
		surfaces: map[Language][]string{
			LanguageEN: {"home", "go home", "home page", "main page", "dashboard"},
			LanguageHI: {"होम", "घर", "मुख्य पृष्ठ"},
		},
	},
	{
		intent: IntentNavigateWeather,
		route:  "/weather",
		surfaces: map[Language][]string{
			LanguageEN: {"weather", "forecast", "weather forecast", "show weather"},
			LanguageHI: {"मौसम", "मौसम बताओ", "पूर्वानुमान"},
		},
	},
	{
		intent: IntentNavigateDisease,
		route:  "/disease",
		surfaces: map[Language][]string{
			LanguageEN: {"disease detection", "scan crop", "check disease", "disease page"},
			LanguageHI: {"रोग पहचान", "रोग जांच", "बीमारी जांच"},
		},
	},
	{
		intent: IntentNavigateAPMC,
		route:  "/apmc",
		surfaces: map[Language][]string{
			LanguageEN: {"apmc", "mandi", "market", "apmc prices", "mandi rates"},
			LanguageHI: {"मंडी", "एपीएमसी", "बाजार"},
		},
	},
	{
		intent: IntentShowHelp,
		surfaces: map[Language][]string{
			LanguageEN: {"help", "what can you do", "commands", "voice help"},
			LanguageHI: {"मदद", "सहायता", "क्या कर सकते हो"},
		},
	},
}

// advancedPatterns may carry the ".*" wildcard and are scored with
// ScoreAdvanced. They are only consulted when no basic keyword reached
// HighConfidenceCeiling.
var advancedPatterns = []intentPattern{
	{
		intent: IntentQueryCropPrice,
		route:  "/apmc",
		surfaces: map[Language][]string{
			LanguageEN: {"price of .* in", "price of .*", "show prices", "what is the price", ".* price", ".* rate", "and in .*", "what about .*"},
			LanguageHI: {"का भाव", "भाव बताओ", ".* की कीमत", "कीमत", "दाम"},
		},
	},
	{
		intent: IntentQueryWeatherTime,
		route:  "/weather",
		surfaces: map[Language][]string{
			LanguageEN: {"will it rain", "rain today", "rain tomorrow", "weather for .*", "forecast for .*"},
			LanguageHI: {"कल मौसम", "कल का मौसम", "कल बारिश", "बारिश होगी"},
		},
	},
	{
		intent: IntentQueryDiseaseTreatment,
		route:  "/disease",
		surfaces: map[Language][]string{
			LanguageEN: {"how to treat", "treatment for .*", "how to cure", "cure for .*", "medicine for .*"},
			LanguageHI: {"इलाज", "उपचार", "दवा"},
		},
	},
	{
		intent: IntentComparePrices,
		route:  "/apmc",
		surfaces: map[Language][]string{
			LanguageEN: {"compare prices", "compare .* prices", "price comparison", "compare rates"},
			LanguageHI: {"कीमतों की तुलना", "भाव तुलना"},
		},
	},
	{
		intent: IntentReadAlerts,
		route:  "/weather",
		surfaces: map[Language][]string{
			LanguageEN: {"alerts", "read alerts", "any alerts", "warnings", "any warnings"},
			LanguageHI: {"अलर्ट", "चेतावनी"},
		},
	},
	{
		intent: IntentBestAPMC,
		route:  "/apmc",
		surfaces: map[Language][]string{
			LanguageEN: {"best apmc", "best mandi", "where to sell", "where should i sell .*", "best market for .*"},
			LanguageHI: {"सबसे अच्छी मंडी", "कहां बेचें"},
		},
	},
}

var intentRoutes = map[Intent]string{}

func init() {
	for _, p := range basicPatterns {
		intentRoutes[p.intent] = p.route
	}
	for _, p := range advancedPatterns {
		intentRoutes[p.intent] = p.route
	}
}

// RouteFor returns the destination route for an intent, empty when the
// intent does not navigate.
func RouteFor(intent Intent) string {
	return intentRoutes[intent]
}

var responseTemplates = map[Intent]map[Language]string{
	IntentNavigateHome: {
		LanguageEN: "Going to the home page.",
		LanguageHI: "होम पेज खोल रहे हैं।",
	},
	IntentNavigateWeather: {
		LanguageEN: "Opening weather forecast.",
		LanguageHI: "मौसम की जानकारी दिखा रहे हैं।",
	},
	IntentNavigateDisease: {
		LanguageEN: "Opening disease detection.",
		LanguageHI: "रोग पहचान खोल रहे हैं।",
	},
	IntentNavigateAPMC: {
		LanguageEN: "Opening APMC market prices.",
		LanguageHI: "मंडी भाव खोल रहे हैं।",
	},
	IntentShowHelp: {
		LanguageEN: "You can ask me about weather, mandi prices, or crop diseases. Try saying 'weather', 'price of wheat', or 'how to treat blight'.",
		LanguageHI: "आप मुझसे मौसम, मंडी भाव या फसल रोगों के बारे में पूछ सकते हैं। 'मौसम' या 'गेहूं का भाव' बोल कर देखें।",
	},
	IntentQueryCropPrice: {
		LanguageEN: "Showing latest mandi prices for {crop}.",
		LanguageHI: "{crop} का ताज़ा मंडी भाव दिखा रहे हैं।",
	},
	IntentQueryWeatherTime: {
		LanguageEN: "Here is the weather forecast for {time}.",
		LanguageHI: "{time} के मौसम की जानकारी दिखा रहे हैं।",
	},
	IntentQueryDiseaseTreatment: {
		LanguageEN: "Showing treatment options for {disease}.",
		LanguageHI: "{disease} के उपचार की जानकारी दिखा रहे हैं।",
	},
	IntentComparePrices: {
		LanguageEN: "Comparing mandi prices in {location}.",
		LanguageHI: "{location} की मंडी कीमतों की तुलना कर रहे हैं।",
	},
	IntentReadAlerts: {
		LanguageEN: "Reading out the latest weather alerts.",
		LanguageHI: "ताज़ा मौसम चेतावनियां पढ़ रहे हैं।",
	},
	IntentBestAPMC: {
		LanguageEN: "Finding the best APMC rates for {crop}.",
		LanguageHI: "{crop} के लिए सबसे अच्छी मंडी खोज रहे हैं।",
	},
	IntentUnknown: {
		LanguageEN: "Sorry, I did not understand that. Say 'help' to hear what I can do.",
		LanguageHI: "माफ़ करें, मैं समझ नहीं पाया। 'मदद' बोलें।",
	},
}

// Prompt identifies a follow-up or status line the conversation engine emits.
type Prompt string

const (
	PromptAskCrop       Prompt = "askCrop"
	PromptAskLocation   Prompt = "askLocation"
	PromptConfirmAction Prompt = "confirmAction"
	PromptConfirmed     Prompt = "confirmed"
	PromptCancelled     Prompt = "cancelled"
	PromptGreeting      Prompt = "greeting"
)

var prompts = map[Prompt]map[Language]string{
	PromptAskCrop: {
		LanguageEN: "Which crop would you like prices for?",
		LanguageHI: "आप किस फसल का भाव जानना चाहते हैं?",
	},
	PromptAskLocation: {
		LanguageEN: "Which location should I look at?",
		LanguageHI: "कौन सी जगह देखूं?",
	},
	PromptConfirmAction: {
		LanguageEN: "Should I go ahead?",
		LanguageHI: "क्या मैं आगे बढ़ूं?",
	},
	PromptConfirmed: {
		LanguageEN: "Okay, taking you there.",
		LanguageHI: "ठीक है, आपको वहां ले जा रहे हैं।",
	},
	PromptCancelled: {
		LanguageEN: "Okay, cancelled.",
		LanguageHI: "ठीक है, रद्द कर दिया।",
	},
	PromptGreeting: {
		LanguageEN: "Hello! I am your FarmHelp assistant. Ask me about weather, mandi prices, or crop diseases.",
		LanguageHI: "नमस्ते! मैं आपका FarmHelp सहायक हूं। मौसम, मंडी भाव या फसल रोगों के बारे में पूछें।",
	},
}

// PromptText returns the localized follow-up line, falling back to English.
func PromptText(p Prompt, lang Language) string {
	byLang, ok := prompts[p]
	if !ok {
		return ""
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[LanguageEN]
}

// Confirmation words are matched as whole utterances, case-insensitive.
var (
	yesWords = map[Language][]string{
		LanguageEN: {"yes", "yeah", "yep", "sure", "ok", "okay", "confirm"},
		LanguageHI: {"हां", "हाँ", "जी", "जी हां", "ठीक है"},
	}
	noWords = map[Language][]string{
		LanguageEN: {"no", "nope", "cancel", "not now"},
		LanguageHI: {"नहीं", "ना", "रद्द"},
	}
)

// CropNames are the canonical English crop names, in scan order. Wheat
// precedes Rice so the first discovered crop of a mixed utterance stays
// stable.
var CropNames = []string{
	"Wheat", "Paddy", "Rice", "Cotton", "Sugarcane", "Tomato", "Potato",
	"Onion", "Chilli", "Maize", "Groundnut", "Cumin", "Soybean", "Mustard",
	"Bajra", "Jowar", "Gram", "Moong", "Barley",
}

type hindiCrop struct {
	Surface   string
	Canonical string
}

// hindiCrops maps Devanagari surface forms to canonical English names.
// Synonyms collapse to one canonical entry (धान and चावल are both Paddy).
var hindiCrops = []hindiCrop{
	{"गेहूं", "Wheat"},
	{"धान", "Paddy"},
	{"चावल", "Paddy"},
	{"कपास", "Cotton"},
	{"गन्ना", "Sugarcane"},
	{"टमाटर", "Tomato"},
	{"आलू", "Potato"},
	{"प्याज", "Onion"},
	{"मिर्च", "Chilli"},
	{"मक्का", "Maize"},
	{"मूंगफली", "Groundnut"},
	{"जीरा", "Cumin"},
	{"सोयाबीन", "Soybean"},
	{"सरसों", "Mustard"},
	{"बाजरा", "Bajra"},
	{"ज्वार", "Jowar"},
	{"चना", "Gram"},
	{"मूंग", "Moong"},
	{"जौ", "Barley"},
}

// States and cities are kept segmented so the Hindi index maps onto the
// English list without ambiguity. The two slices of a pair are equal length.
var (
	statesEN = []string{
		"Punjab", "Haryana", "Gujarat", "Maharashtra", "Rajasthan",
		"Uttar Pradesh", "Madhya Pradesh", "Bihar", "Karnataka",
		"Tamil Nadu", "Andhra Pradesh", "West Bengal",
	}
	statesHI = []string{
		"पंजाब", "हरियाणा", "गुजरात", "महाराष्ट्र", "राजस्थान",
		"उत्तर प्रदेश", "मध्य प्रदेश", "बिहार", "कर्नाटक",
		"तमिलनाडु", "आंध्र प्रदेश", "पश्चिम बंगाल",
	}
	citiesEN = []string{
		"Ludhiana", "Amritsar", "Rajkot", "Ahmedabad", "Surat", "Indore",
		"Nagpur", "Jaipur", "Kanpur", "Delhi", "Pune", "Chandigarh", "Jetpur",
	}
	citiesHI = []string{
		"लुधियाना", "अमृतसर", "राजकोट", "अहमदाबाद", "सूरत", "इंदौर",
		"नागपुर", "जयपुर", "कानपुर", "दिल्ली", "पुणे", "चंडीगढ़", "जेतपुर",
	}
)

type timeRefPhrase struct {
	Surface string
	Token   string
}

// Longer phrases first; the scanner stops at the first hit.
var (
	timeRefsEN = []timeRefPhrase{
		{"day after tomorrow", "day after tomorrow"},
		{"tomorrow", "tomorrow"},
		{"yesterday", "yesterday"},
		{"today", "today"},
		{"next week", "next week"},
		{"this week", "this week"},
	}
	timeRefsHI = []timeRefPhrase{
		{"परसों", "day after tomorrow"},
		{"कल", "tomorrow"},
		{"आज", "today"},
		{"अगले हफ्ते", "next week"},
		{"इस हफ्ते", "this week"},
	}
)

var (
	diseasesEN = []string{
		"paddy blast", "blast", "late blight", "early blight", "blight",
		"leaf rust", "rust", "smut", "wilt", "leaf spot", "powdery mildew",
		"downy mildew", "root rot", "mosaic", "leaf curl",
	}
	diseasesHI = []string{
		"झुलसा", "रतुआ", "कंडुआ", "उकठा", "पत्ती धब्बा", "चूर्णिल आसिता",
	}
)

// Neutral placeholder fallbacks: crop, time and disease fall back to a
// neutral word, location to the empty string.
var (
	neutralCrop    = map[Language]string{LanguageEN: "your crop", LanguageHI: "आपकी फसल"}
	neutralTime    = map[Language]string{LanguageEN: "today", LanguageHI: "आज"}
	neutralDisease = map[Language]string{LanguageEN: "the disease", LanguageHI: "रोग"}
)

// wildcardCache holds the compiled form of every ".*" surface. Patterns are
// compiled once at package init; an invalid pattern is simply absent and
// falls back to literal scoring.
var wildcardCache = map[string]*regexp.Regexp{}

func init() {
	for _, p := range advancedPatterns {
		for _, lang := range Languages {
			for _, surface := range p.surfaces[lang] {
				compileWildcard(surface)
			}
		}
	}
}
