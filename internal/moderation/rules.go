package moderation

import "regexp"

// RuleSet is the immutable pattern table the pipeline is built from. It is
// compiled once and shared read-only across sessions. Tests substitute
// minimal sets.
type RuleSet struct {
	// LanguageRequest matches explicit or implicit requests to switch the
	// conversation to another natural language. A match is a hard stop.
	LanguageRequest []*regexp.Regexp
	// Profanity matches profane vocabulary across languages. A match is a
	// hard stop with zero tolerance.
	Profanity []*regexp.Regexp
	// DisallowedTopics matches political, religious, deeply personal and
	// conspiracy content. A match only steers the conversation away.
	DisallowedTopics []*regexp.Regexp
	// Behavior matches threats, slurs, harassment and abuse directed at the
	// interviewer. Matches escalate a warning counter.
	Behavior []*regexp.Regexp

	// SecurityContext lists testing-context markers that suppress profanity
	// and behavior matches when the text also contains "penetration".
	// Penetration testing is legitimate security terminology.
	SecurityContext []string

	// WarningLimit is the behavior warning count that forces termination.
	WarningLimit int
}

// DefaultWarningLimit allows one behavior warning before the second flagged
// utterance terminates the session.
const DefaultWarningLimit = 2

// DefaultRuleSet returns the production moderation rules.
//
// The Cyrillic sets intentionally avoid \b: RE2 word boundaries are
// ASCII-only and never fire around Cyrillic letters.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		LanguageRequest: compile(
			`(?i)\b(can we|let's|lets|could we|shall we|please|i want to|let me|let us)\s*(talk|speak|continue|chat|write|switch|communicate|do this|keep going)?\s*(in|using)\s+(spanish|french|german|italian|portuguese|polish|chinese|japanese|korean|arabic|russian|hindi|dutch|swedish|norwegian|danish|finnish|turkish|ukrainian|czech|romanian|greek|hebrew|other)\b`,
			`(?i)\b(do you|can you|could you|will you|are you able to)\s*(talk|speak|respond|reply|continue|write|understand)?\s*(in|using)?\s*(spanish|french|german|italian|portuguese|polish|chinese|japanese|korean|arabic|russian|hindi|dutch|swedish|norwegian|danish|finnish|turkish|ukrainian|czech|romanian|greek|hebrew)\b`,
			`(?i)\b(switch|change|translate|swap)\s*(language|tongue|idiom)?\s*(to|into)?\s*(spanish|french|german|italian|portuguese|polish|chinese|japanese|korean|arabic|russian|hindi|dutch|swedish|norwegian|danish|finnish|turkish|ukrainian|czech|romanian|greek|hebrew)\b`,
			`(?i)\b(use|write|type|reply)\s*(in|using)?\s*(spanish|french|german|italian|portuguese|polish|chinese|japanese|korean|arabic|russian|hindi|dutch|swedish|norwegian|danish|finnish|turkish|ukrainian|czech|romanian|greek|hebrew)\b`,
			`(?i)\b(change|switch|set|use|speak|talk|continue)\s*(another|different|my native|my own)?\s*language\b`,
			`(?i)\bin\s*(another|different|native|my own)\s*language\b`,
			`(?i)\b(in|using)\s*my\s*(language|native tongue)\b`,
			`(?i)hablar\s+en\s+español`,
			`(?i)puedes\s+hablar\s+español`,
			`(?i)parler\s+en\s+français`,
			`(?i)tu\s+parles\s+français`,
			`(?i)sprechen\s+sie\s+deutsch`,
			`(?i)kannst\s+du\s+deutsch`,
			`(?i)parlare\s+italiano`,
			`(?i)falar\s+português`,
			`(?i)czy\s+mówisz\s+po\s+polsku`,
			`(?i)możemy\s+mówić\s+po\s+polsku`,
			`(?i)po\s+polsku`,
			`(?i)говориш?ь?\s+по[-\s]?русски`,
			`(?i)говорите\s+по[-\s]?русски`,
			`(?i)(можем|можна|давай)\s+по[-\s]?українськи`,
			`你会说中文吗`,
			`说中文`,
			`日本語で話せますか`,
			`(?i)한국어로`,
		),
		Profanity: compile(
			`(?i)\b(fuck|fucking|motherfucker|fuckin|fuckhead|fuckwit|shit|bullshit|horseshit|dogshit|crap|piss|pissed|pussy|cunt|dick|cock|prick|asshole|jackass|dumbass|bitch|bitches|bastard|slut|whore|wanker|tosser|bollocks|twat|dipshit|dumbfuck|dickhead|shithead|nigger|nigga|faggot|fag|goddamn|damnit|son of a bitch|piece of shit|go fuck yourself|eat shit|blowjob|handjob|porn|gangbang|dildo|tits|titties)\b`,
			`(?i)\b(kurwa|kurwy|kurwica|spierdalaj|pierdol|pierdole|pierdolony|pojebany|zjeb|zjebany|jebany|jebana|jebani|chuj|chuja|chuje|chujowy|chujnia|kutas|fiut|cipa|pizda|skurwysyn|skurwiel|sukinsyn|dziwka|szmata|frajer|debil|kretyn|gówno|zasrany|spierdol|odpierdol|dupa|dupek)\b`,
			`(?i)\b(joder|mierda|puta|puto|putas|gilipollas|cabron|cabrona|coño|chingar|chingada|pendejo|pendeja|culero|cabrón|maricon|hijo de puta|carajo|hostia|verga|cojones)\b`,
			`(?i)\b(merde|putain|connard|connasse|salope|enculé|encule|bordel|nique|nique ta mère|batard|salaud|emmerd|branleur|bite|chatte)\b`,
			`(?i)(блядь|бляд|сука|хуй|пизд|гандон|мразь|довбойоб|гівно|підор|виблядок|срака|лайно)`,
			`(?i)(блять|сука|хуй|пизд|ебать|ебан|ебло|гондон|мудак|ушлепок|уебок|ублюдок|говно|пидор|пидорас|шлюха|дрочить|срать|ссать)`,
		),
		DisallowedTopics: compile(
			`(?i)\b(trump|biden|obama|clinton|republican|democrat|conservative|liberal|politics|political|election|vote|voting|congress|senate|politician|capitalism|socialism|communism|fascism|nazi|hitler|stalin|dictator|dictatorship|regime|coup|riot|antifa|qanon|deep state|illuminati|freemason)\b`,
			`(?i)\b(jesus|christ|christian|christianity|muslim|islam|islamic|jewish|judaism|hindu|hinduism|buddhist|buddhism|religion|religious|church|mosque|synagogue|bible|quran|torah|prayer|atheist|agnostic|satan|heaven|prophet|muhammad|allah|buddha|karma|reincarnation|afterlife|salvation|missionary|evangelist|fundamentalist|sect|cult)\b`,
			`(?i)\b(suicide|kill myself|end my life|self harm|depression|anxiety|mental health|therapist|psychiatrist|antidepressant|bipolar|schizophrenia|ptsd|domestic violence|sexual assault|rape|hate crime|stalking|alcoholism|drug abuse|overdose|rehab)\b`,
			`(?i)\b(how old are you|what's your age|where do you live|what's your address|social security|ssn|credit card|bank account|password|private life|dating|married|divorced|boyfriend|girlfriend|husband|wife|salary|income|wealth|mortgage)\b`,
			`(?i)\b(flat earth|moon landing|hoax|fake news|mainstream media|lizard people|chemtrails|vaccines cause autism|5g|covid conspiracy|plandemic|new world order|agenda 21|population control|mind control|brainwashing|propaganda)\b`,
		),
		Behavior: compile(
			`(?i)\b(kill|murder|die|death|threaten|violence|violent|assault|stab|shoot|gun|weapon|bomb|terrorist|terrorism|destroy|annihilate)\b`,
			`(?i)\b(nigger|nigga|faggot|fag|tranny|dyke|retard|retarded|spic|wetback|chink|gook|kike|towelhead|raghead|cracker|honky|whitey|gringo|beaner|coon|master race|white power|white supremacy|kkk|ku klux klan|aryan|skinhead)\b`,
			`(?i)\b(sexy|gorgeous|attractive|boobs|tits|pussy|dick|cock|penis|vagina|sexual|penetration|penetrate|fuck me|sleep with|naked|nude|undress|masturbate|orgasm|horny|aroused|seduce|flirt|date me|marry me|kiss|grope|fondle)\b`,
			`(?i)\b(stupid|dumb|idiot|moron|retard|pathetic|ignorant|shut up|fuck you|screw you|go to hell|kiss my ass|bite me)\b`,
		),
		SecurityContext: []string{
			"penetration test",
			"penetration testing",
			"pentest",
			"pen test",
			"pen-testing",
		},
		WarningLimit: DefaultWarningLimit,
	}
}

func compile(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		compiled = append(compiled, regexp.MustCompile(expr))
	}
	return compiled
}
