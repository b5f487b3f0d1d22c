package panel

// Notice is a one-line message shown at the top of the panel after a form post.
type Notice struct {
	Kind    string
	Message string
}

// Notice codes carried in the redirect after a panel form post.
const (
	NoticeApplied      = "applied"
	NoticeSaved        = "saved"
	NoticeDeleted      = "deleted"
	NoticeReset        = "reset"
	NoticeNameRequired = "name-required"
	NoticeInvalidColor = "invalid-color"
	NoticeRateLimited  = "rate-limited"
)

var notices = map[string]Notice{
	NoticeApplied:      {Kind: "success", Message: "Profilo applicato"},
	NoticeSaved:        {Kind: "success", Message: "Profilo salvato!"},
	NoticeDeleted:      {Kind: "success", Message: "Profilo eliminato"},
	NoticeReset:        {Kind: "success", Message: "Colori ripristinati"},
	NoticeNameRequired: {Kind: "error", Message: "Inserisci un nome per il profilo"},
	NoticeInvalidColor: {Kind: "error", Message: "Colore non valido: usa il formato #RRGGBB"},
	NoticeRateLimited:  {Kind: "error", Message: "Troppe richieste, riprova tra poco"},
}

// LookupNotice resolves a notice code. Unknown codes yield nil.
func LookupNotice(code string) *Notice {
	n, ok := notices[code]
	if !ok {
		return nil
	}
	return &n
}
