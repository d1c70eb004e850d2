package lexer

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	KindEOF Kind = iota
	KindError
	KindNewline
	KindIndent
	KindDedent
	KindIdentifier
	KindNumber
	KindString
	KindOperator

	// Keywords, one kind per canonical keyword.
	KindSummon        // import
	KindQuest         // function definition
	KindReward        // return
	KindAttack        // print
	KindScout         // input
	KindSpot          // if
	KindCounter       // elif
	KindDodge         // else
	KindReplay        // while
	KindFarm          // for
	KindGuild         // class definition
	KindEncounter     // match subject
	KindCase          // match case
	KindEmbark        // try
	KindGameOver      // except
	KindSavePoint     // finally
	KindSkipEncounter // continue
	KindEscapeDungeon // break
	KindAnd
	KindOr
	KindNot
)

// Token is a lexical unit with its literal text and source line.
// Tokens are produced in non-decreasing line order.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

// keywords maps source spellings to their token kinds. Lookup is
// case-sensitive. Type names (potion, elixir, fate, scroll) and the
// boolean literals true/false are deliberately absent; they scan as
// identifiers.
var keywords = map[string]Kind{
	"summon":        KindSummon,
	"quest":         KindQuest,
	"reward":        KindReward,
	"attack":        KindAttack,
	"scout":         KindScout,
	"spot":          KindSpot,
	"counter":       KindCounter,
	"dodge":         KindDodge,
	"replay":        KindReplay,
	"farm":          KindFarm,
	"guild":         KindGuild,
	"encounter":     KindEncounter,
	"case":          KindCase,
	"embark":        KindEmbark,
	"gameOver":      KindGameOver,
	"savePoint":     KindSavePoint,
	"skipEncounter": KindSkipEncounter,
	"escapeDungeon": KindEscapeDungeon,
	"and":           KindAnd,
	"or":            KindOr,
	"not":           KindNot,
}

var kindNames = map[Kind]string{
	KindEOF:           "EOF",
	KindError:         "ERROR",
	KindNewline:       "NEWLINE",
	KindIndent:        "INDENT",
	KindDedent:        "DEDENT",
	KindIdentifier:    "IDENTIFIER",
	KindNumber:        "NUMBER",
	KindString:        "STRING",
	KindOperator:      "OPERATOR",
	KindSummon:        "summon",
	KindQuest:         "quest",
	KindReward:        "reward",
	KindAttack:        "attack",
	KindScout:         "scout",
	KindSpot:          "spot",
	KindCounter:       "counter",
	KindDodge:         "dodge",
	KindReplay:        "replay",
	KindFarm:          "farm",
	KindGuild:         "guild",
	KindEncounter:     "encounter",
	KindCase:          "case",
	KindEmbark:        "embark",
	KindGameOver:      "gameOver",
	KindSavePoint:     "savePoint",
	KindSkipEncounter: "skipEncounter",
	KindEscapeDungeon: "escapeDungeon",
	KindAnd:           "and",
	KindOr:            "or",
	KindNot:           "not",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsKeyword reports whether the kind is one of the keyword kinds.
func (k Kind) IsKeyword() bool {
	return k >= KindSummon
}
