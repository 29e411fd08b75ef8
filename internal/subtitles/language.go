package subtitles

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnknownLanguage is the explicit code and display name for unresolvable
// labels. Resolution never fails: the pair degrades to unknown/unknown.
const UnknownLanguage = "unknown"

// aliasMap resolves native names, 3-letter codes and regional variants to
// two-letter codes. Grown from labels seen in the wild; unknowns are logged
// at debug level so the table can be extended.
var aliasMap = map[string]string{
	// English
	"eng": "en", "british": "en", "english": "en", "anglais": "en",

	// Spanish
	"spa": "es", "esp": "es", "lat": "es", "latin": "es", "mex": "es",
	"european spanish": "es", "español": "es", "espanol": "es", "spanish": "es",
	"latin american": "es", "latin america spanish": "es",

	// French
	"fre": "fr", "fra": "fr", "français": "fr", "francais": "fr", "french": "fr",
	"french canadian": "fr",

	// German
	"ger": "de", "deu": "de", "deutsch": "de", "german": "de",

	// Italian
	"ita": "it", "italiano": "it", "italian": "it",

	// Polish
	"pol": "pl", "polish": "pl", "polski": "pl",

	// Portuguese
	"por": "pt", "ptb": "pt", "bra": "pt", "br": "pt", "brazilian": "pt",
	"brazilian portuguese": "pt", "português": "pt", "portugues": "pt",
	"portuguese": "pt", "portuguese brazilian": "pt",

	// Russian
	"rus": "ru", "рус": "ru", "русский": "ru", "russian": "ru",

	// Japanese
	"jpn": "ja", "jap": "ja", "日本語": "ja", "japanese": "ja",

	// Korean
	"kor": "ko", "한국어": "ko", "korean": "ko",

	// Chinese
	"chi": "zh", "zho": "zh", "zhcn": "zh", "zhtw": "zh",
	"中文": "zh", "简体中文": "zh", "繁體中文": "zh", "中文(简体": "zh",
	"中文(繁體": "zh", "普通话": "zh", "mandarin": "zh", "chinese": "zh",
	"廣東話": "zh", "粤语": "zh", "cantonese": "zh",

	// Dutch
	"dut": "nl", "ned": "nl", "nld": "nl", "dutch": "nl", "nederlands": "nl",

	// Czech
	"cze": "cs", "češ": "cs", "czech": "cs", "čeština": "cs",

	// Danish
	"dan": "da", "danish": "da", "dansk": "da",

	// Hungarian
	"hun": "hu", "mag": "hu", "hungarian": "hu", "magyar": "hu",

	// Turkish
	"tur": "tr", "tür": "tr", "turkish": "tr", "türkçe": "tr",

	// Arabic
	"ara": "ar", "arabic": "ar", "العربية": "ar",

	// Hebrew
	"heb": "he", "עברית": "he", "hebrew": "he",

	// Persian/Farsi
	"fas": "fa", "per": "fa", "فارسی": "fa", "farsi": "fa", "persian": "fa",

	// Hindi
	"hin": "hi", "हिन्दी": "hi", "hindi": "hi",

	// Bengali
	"ben": "bn", "বাংলা": "bn", "bengali": "bn",

	// Tamil
	"tam": "ta", "தமிழ்": "ta", "tamil": "ta",

	// Telugu
	"tel": "te", "తెలుగు": "te", "telugu": "te",

	// Thai
	"tha": "th", "ไทย": "th", "thai": "th",

	// Vietnamese
	"vie": "vi", "tiế": "vi", "vnm": "vi", "tiếng việt": "vi", "vietnamese": "vi",

	// Greek
	"gre": "el", "ελλ": "el", "ελληνικά": "el", "greek": "el",

	// Finnish
	"fin": "fi", "suo": "fi", "suomi": "fi", "finnish": "fi",

	// Norwegian
	"nor": "no", "norsk": "no", "norwegian": "no",

	// Romanian
	"rom": "ro", "ron": "ro", "romanian": "ro", "română": "ro", "rum": "ro",

	// Slovak
	"slo": "sk", "slk": "sk", "slovak": "sk", "slovenčina": "sk",

	// Slovenian
	"slv": "sl", "slovenian": "sl", "slovenščina": "sl",

	// Swedish
	"swe": "sv", "sve": "sv", "swedish": "sv", "svenska": "sv",

	// Estonian
	"est": "et", "eesti": "et", "estonian": "et",

	// Lithuanian
	"lit": "lt", "lietuvių": "lt", "lithuanian": "lt",

	// Latvian
	"lav": "lv", "latviešu": "lv", "latvian": "lv",

	// Indonesian
	"ind": "id", "indo": "id", "indonesia": "id", "bahasa indonesia": "id",
	"indonesian": "id",

	// Malay
	"may": "ms", "malay": "ms", "melayu": "ms", "bahasa melayu": "ms",

	// Ukrainian
	"ukr": "uk", "українська": "uk", "ukrainian": "uk",

	// Bulgarian
	"bul": "bg", "български": "bg", "bulgarian": "bg",

	// Serbian
	"srp": "sr", "српски": "sr", "serbian": "sr",

	// Croatian
	"hrv": "hr", "cro": "hr", "croatian": "hr", "hrvatski": "hr",

	// Bosnian
	"bos": "bs", "bosnian": "bs", "bosanski": "bs",

	// Albanian
	"alb": "sq", "shqip": "sq", "albanian": "sq",

	// Georgian
	"geo": "ka", "ქართული": "ka", "georgian": "ka",

	// Armenian
	"arm": "hy", "հայերեն": "hy", "armenian": "hy",

	// Filipino
	"tgl": "tl", "fil": "tl", "tagalog": "tl", "filipino": "tl",

	// Icelandic
	"ice": "is", "isl": "is", "icelandic": "is", "íslenska": "is",

	// Catalan
	"cat": "ca", "català": "ca", "catalan": "ca",

	// Galician
	"glg": "gl", "galego": "gl", "galician": "gl", "galega": "gl",

	// Basque
	"eus": "eu", "baq": "eu", "basque": "eu", "euskara": "eu",

	// Macedonian
	"mac": "mk", "mkd": "mk", "macedonian": "mk", "македонски": "mk",

	// Kannada
	"kan": "kn", "kannada": "kn",

	// Malayalam
	"mal": "ml", "malayalam": "ml", "മലയാളം": "ml",

	// Norwegian Bokmål
	"nob": "nb", "bokmål": "nb", "bokmal": "nb", "norsk bokmål": "nb",

	// Special cases seen on release subtitles
	"traditional": "zh", "sdh": "en", "european": "en", "standard estonian": "et",
	"standard latvian": "lv", "standard malay": "ml", "simplified": "zh",
	"forced": "en", "none": UnknownLanguage,
}

// languageMap maps a resolved two-letter code to its display name.
var languageMap = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"ja": "Japanese",
	"ko": "Korean",
	"zh": "Chinese",
	"nl": "Dutch",
	"da": "Danish",
	"hu": "Hungarian",
	"cs": "Czech",
	"tr": "Turkish",
	"ar": "Arabic",
	"he": "Hebrew",
	"fa": "Persian",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"th": "Thai",
	"vi": "Vietnamese",
	"fi": "Finnish",
	"el": "Greek",
	"no": "Norwegian",
	"ro": "Romanian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sv": "Swedish",
	"et": "Estonian",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"id": "Indonesian",
	"ms": "Malay",
	"uk": "Ukrainian",
	"bg": "Bulgarian",
	"sr": "Serbian",
	"hr": "Croatian",
	"bs": "Bosnian",
	"sq": "Albanian",
	"ka": "Georgian",
	"hy": "Armenian",
	"tl": "Filipino",
	"is": "Icelandic",
	"ca": "Catalan",
	"gl": "Galician",
	"eu": "Basque",
	"mk": "Macedonian",
	"kn": "Kannada",
	"ml": "Malayalam",
	"nb": "Norwegian Bokmål",
}

var (
	parenRe   = regexp.MustCompile(`\s*\(.*?\)`)
	bracketRe = regexp.MustCompile(`\s*\[.*?\]`)
	digitRe   = regexp.MustCompile(`\d+`)

	// Filename label patterns tried in order: a "_lang" suffix, then the
	// whole base name as a last resort.
	labelRes = []*regexp.Regexp{
		regexp.MustCompile(`_([^_]*)\.vtt$`),
		regexp.MustCompile(`(.*)\.vtt$`),
	}
)

// CleanLabel normalizes a raw language label: Unicode NFKC (folds
// full-width characters), dots/commas to spaces, bracketed segments and
// digits removed, lowercased, whitespace collapsed. A label cleaning down
// to nothing becomes "unknown"; a label of more than 4 words is almost
// always a misattached movie title and is forced to "en".
func CleanLabel(label string) string {
	s := norm.NFKC.String(label)
	s = strings.ReplaceAll(s, ".", " ")
	s = strings.ReplaceAll(s, ",", " ")
	s = parenRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")
	s = digitRe.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), " ")

	if s == "" {
		return UnknownLanguage
	}
	if len(strings.Fields(s)) > 4 {
		return "en"
	}
	return s
}

// ResolveLanguage maps a cleaned label to a (code, display) pair. Lookup
// order: exact ISO-code match, alias table, first-word alias. Both values
// fall back to "unknown"; the pair is always produced.
func ResolveLanguage(cleaned string) (code, display string) {
	code = UnknownLanguage
	switch {
	case languageMap[cleaned] != "":
		code = cleaned
	case aliasMap[cleaned] != "":
		code = aliasMap[cleaned]
	default:
		if fields := strings.Fields(cleaned); len(fields) > 0 && aliasMap[fields[0]] != "" {
			code = aliasMap[fields[0]]
		}
	}

	display = languageMap[code]
	if display == "" {
		display = UnknownLanguage
	}
	return code, display
}

// labelFromFilename derives the raw label from a subtitle filename:
// the suffix after the last underscore when present, otherwise the whole
// base name.
func labelFromFilename(filename string) string {
	for _, re := range labelRes {
		if m := re.FindStringSubmatch(filename); m != nil {
			return m[1]
		}
	}
	return UnknownLanguage
}
