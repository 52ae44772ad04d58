package language

// iso639 is the ISO 639-1 table accepted by dvdauthor, keyed by lowercase code.
var iso639 = map[string]string{
	"aa": "AFAR",
	"ab": "ABKHAZIAN",
	"af": "AFRIKAANS",
	"am": "AMHARIC",
	"ar": "ARABIC",
	"as": "ASSAMESE",
	"ay": "AYMARA",
	"az": "AZERBAIJANI",
	"ba": "BASHKIR",
	"be": "BYELORUSSIAN",
	"bg": "BULGARIAN",
	"bh": "BIHARI",
	"bi": "BISLAMA",
	"bn": "BENGALI;BANGLA",
	"bo": "TIBETAN",
	"br": "BRETON",
	"ca": "CATALAN",
	"co": "CORSICAN",
	"cs": "CZECH",
	"cy": "WELSH",
	"da": "DANISH",
	"de": "GERMAN",
	"dz": "BHUTANI",
	"el": "GREEK",
	"en": "ENGLISH",
	"eo": "ESPERANTO",
	"es": "SPANISH",
	"et": "ESTONIAN",
	"eu": "BASQUE",
	"fa": "PERSIAN (farsi)",
	"fi": "FINNISH",
	"fj": "FIJI",
	"fo": "FAROESE",
	"fr": "FRENCH",
	"fy": "FRISIAN",
	"ga": "IRISH",
	"gd": "SCOTS GAELIC",
	"gl": "GALICIAN",
	"gn": "GUARANI",
	"gu": "GUJARATI",
	"ha": "HAUSA",
	"hi": "HINDI",
	"hr": "CROATIAN",
	"hu": "HUNGARIAN",
	"hy": "ARMENIAN",
	"ia": "INTERLINGUA",
	"ie": "INTERLINGUE",
	"ik": "INUPIAK",
	"in": "INDONESIAN",
	"is": "ICELANDIC",
	"it": "ITALIAN",
	"iw": "HEBREW",
	"ja": "JAPANESE",
	"ji": "YIDDISH",
	"jv": "JAVANESE",
	"ka": "GEORGIAN",
	"kk": "KAZAKH",
	"kl": "GREENLANDIC",
	"km": "CAMBODIAN",
	"kn": "KANNADA",
	"ko": "KOREAN",
	"ks": "KASHMIRI",
	"ku": "KURDISH",
	"ky": "KIRGHIZ",
	"la": "LATIN",
	"ln": "LINGALA",
	"lo": "LAOTHIAN",
	"lt": "LITHUANIAN",
	"lv": "LATVIAN;LETTISH",
	"mg": "MALAGASY",
	"mi": "MAORI",
	"mk": "MACEDONIAN",
	"ml": "MALAYALAM",
	"mn": "MONGOLIAN",
	"mo": "MOLDAVIAN",
	"mr": "MARATHI",
	"ms": "MALAY",
	"mt": "MALTESE",
	"my": "BURMESE",
	"na": "NAURU",
	"ne": "NEPALI",
	"nl": "DUTCH",
	"no": "NORWEGIAN",
	"oc": "OCCITAN",
	"om": "AFAN (OROMO",
	"or": "ORIYA",
	"pa": "PUNJABI",
	"pl": "POLISH",
	"ps": "PASHTO;PUSHTO",
	"pt": "PORTUGUESE",
	"qu": "QUECHUA",
	"rm": "RHAETO-ROMANCE",
	"rn": "KURUNDI",
	"ro": "ROMANIAN",
	"ru": "RUSSIAN",
	"rw": "KINYARWANDA",
	"sa": "SANSKRIT",
	"sd": "SINDHI",
	"sg": "SANGHO",
	"sh": "SERBO-CROATIAN",
	"si": "SINGHALESE",
	"sk": "SLOVAK",
	"sl": "SLOVENIAN",
	"sm": "SAMOAN",
	"sn": "SHONA",
	"so": "SOMALI",
	"sq": "ALBANIAN",
	"sr": "SERBIAN",
	"ss": "SISWATI",
	"st": "SESOTHO",
	"su": "SUNDANESE",
	"sv": "SWEDISH",
	"sw": "SWAHILI",
	"ta": "TAMIL",
	"te": "TELUGU",
	"tg": "TAJIK",
	"th": "THAI",
	"ti": "TIGRINYA",
	"tk": "TURKMEN",
	"tl": "TAGALOG",
	"tn": "SETSWANA",
	"to": "TONGA",
	"tr": "TURKISH",
	"ts": "TSONGA",
	"tt": "TATAR",
	"tw": "TWI",
	"uk": "UKRAINIAN",
	"ur": "URDU",
	"uz": "UZBEK",
	"vi": "VIETNAMESE",
	"vo": "VOLAPUK",
	"wo": "WOLOF",
	"xh": "XHOSA",
	"yo": "YORUBA",
	"zh": "CHINESE",
	"zu": "ZULU",
}
