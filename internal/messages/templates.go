package messages

import "fmt"

// Type selects which message is generated.
type Type string

const (
	TypeRetention    Type = "retention"
	TypeConfirmation Type = "confirmation"
)

// Valid reports whether the type is one the generator knows.
func (t Type) Valid() bool {
	return t == TypeRetention || t == TypeConfirmation
}

// Request carries the template variables for one message.
type Request struct {
	Type        Type   `json:"type"`
	ClientName  string `json:"clientName"`
	LastSession string `json:"lastSession,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	MeetLink    string `json:"meetLink,omitempty"`
}

// Prompt renders the LLM prompt for the request. The texts are in Brazilian
// Portuguese and address the clinic's practitioner by name.
func (r Request) Prompt() string {
	switch r.Type {
	case TypeRetention:
		lastSession := r.LastSession
		if lastSession == "" {
			lastSession = "algum tempo"
		}
		return fmt.Sprintf("Escreva uma mensagem curta, acolhedora e profissional para o WhatsApp/Email de um paciente chamado %s que não comparece a uma sessão desde %s. O objetivo é demonstrar preocupação com o bem-estar dele e oferecer uma nova consulta de forma gentil, sem pressionar. A profissional é Soraia, Psicóloga Clínica e Neuropsicóloga. Mantenha o tom empático.", r.ClientName, lastSession)
	case TypeConfirmation:
		return fmt.Sprintf(`Escreva uma mensagem de confirmação de agendamento de consulta para o paciente %s.
    Data: %s às %s.
    Link da sessão: %s.
    A profissional é Soraia, Psicóloga Clínica e Neuropsicóloga.
    A mensagem deve ser profissional, acolhedora e instruir o paciente a clicar no link no horário da sessão.`, r.ClientName, r.Date, r.Time, r.MeetLink)
	default:
		return ""
	}
}

// Fallback renders the canned message used when generation fails. It must
// always produce usable text so callers never surface an LLM outage.
func (r Request) Fallback() string {
	switch r.Type {
	case TypeRetention:
		return fmt.Sprintf("Olá %s, como você está? Notei que faz um tempo que não nos vemos. Gostaria de saber se está tudo bem e se gostaria de agendar um novo horário. Abraços, Soraia.", r.ClientName)
	case TypeConfirmation:
		return fmt.Sprintf("Olá %s, sua consulta com a Dra. Soraia está confirmada para %s às %s. Link: %s. Até lá!", r.ClientName, r.Date, r.Time, r.MeetLink)
	default:
		return ""
	}
}
