package cleaner

// emojiDescriptions maps emoji glyphs to a short spoken description
var emojiDescriptions = map[string]string{
	"😀": "grinning face",
	"😁": "beaming face with smiling eyes",
	"😂": "face with tears of joy",
	"🤣": "rolling on the floor laughing",
	"😃": "grinning face with big eyes",
	"😄": "grinning face with smiling eyes",
	"😅": "grinning face with sweat",
	"😆": "grinning squinting face",
	"😉": "winking face",
	"😊": "smiling face with smiling eyes",
	"😋": "face savoring food",
	"😎": "smiling face with sunglasses",
	"😍": "smiling face with heart-eyes",
	"😘": "face blowing a kiss",
	"🙂": "slightly smiling face",
	"🙃": "upside-down face",
	"🤔": "thinking face",
	"🤗": "hugging face",
	"🤩": "star-struck",
	"😐": "neutral face",
	"😑": "expressionless face",
	"🙄": "face with rolling eyes",
	"😏": "smirking face",
	"😣": "persevering face",
	"😥": "sad but relieved face",
	"😮": "face with open mouth",
	"😴": "sleeping face",
	"😌": "relieved face",
	"😛": "face with tongue",
	"😜": "winking face with tongue",
	"😒": "unamused face",
	"😓": "downcast face with sweat",
	"😔": "pensive face",
	"😕": "confused face",
	"😲": "astonished face",
	"😞": "disappointed face",
	"😢": "crying face",
	"😭": "loudly crying face",
	"😱": "face screaming in fear",
	"😡": "pouting face",
	"😠": "angry face",
	"😷": "face with medical mask",
	"🤒": "face with thermometer",
	"🤡": "clown face",
	"🤖": "robot",
	"👻": "ghost",
	"💩": "pile of poo",
	"💀": "skull",
	"👋": "waving hand",
	"👌": "OK hand",
	"👍": "thumbs up",
	"👎": "thumbs down",
	"👏": "clapping hands",
	"🙏": "folded hands",
	"💪": "flexed biceps",
	"👀": "eyes",
	"👶": "baby",
	"👩": "woman",
	"👨": "man",
	"👧": "girl",
	"👦": "boy",
	"❤": "red heart",
	"❤️": "red heart",
	"💔": "broken heart",
	"💯": "hundred points",
	"💤": "zzz",
	"🔥": "fire",
	"✨": "sparkles",
	"⭐": "star",
	"🌟": "glowing star",
	"☀️": "sun",
	"🌙": "crescent moon",
	"🌈": "rainbow",
	"☔": "umbrella with rain drops",
	"❄️": "snowflake",
	"🌋": "volcano",
	"🌊": "water wave",
	"🐶": "dog face",
	"🐱": "cat face",
	"🐴": "horse face",
	"🐑": "ewe",
	"🐟": "fish",
	"🐳": "spouting whale",
	"🐦": "bird",
	"🌸": "cherry blossom",
	"🌹": "rose",
	"🍀": "four leaf clover",
	"🍎": "red apple",
	"🍌": "banana",
	"🍍": "pineapple",
	"🍓": "strawberry",
	"🍕": "pizza",
	"🍔": "hamburger",
	"🎂": "birthday cake",
	"☕": "hot beverage",
	"🍺": "beer mug",
	"🍷": "wine glass",
	"⚽": "soccer ball",
	"🏆": "trophy",
	"🎉": "party popper",
	"🎁": "wrapped gift",
	"🎄": "Christmas tree",
	"🎵": "musical note",
	"🎶": "musical notes",
	"📌": "pushpin",
	"📍": "round pushpin",
	"📅": "calendar",
	"📞": "telephone receiver",
	"📱": "mobile phone",
	"💻": "laptop",
	"📷": "camera",
	"📚": "books",
	"✏️": "pencil",
	"✉️": "envelope",
	"🔑": "key",
	"🔒": "locked",
	"💡": "light bulb",
	"💰": "money bag",
	"🚗": "automobile",
	"✈️": "airplane",
	"🚀": "rocket",
	"🏠": "house",
	"⏰": "alarm clock",
	"⌛": "hourglass done",
	"🧹": "broom",
	"🧡": "orange heart",
	"💙": "blue heart",
	"💚": "green heart",
	"💛": "yellow heart",
	"💜": "purple heart",
	"✅": "check mark button",
	"❌": "cross mark",
	"❓": "question mark",
	"❗": "exclamation mark",
	"⚠️": "warning",
	"🇮🇸": "flag Iceland",
}

// DefaultEmojiTable returns a fresh copy of the emoji description table
func DefaultEmojiTable() map[string]string {
	out := make(map[string]string, len(emojiDescriptions))
	for k, v := range emojiDescriptions {
		out[k] = v
	}
	return out
}
