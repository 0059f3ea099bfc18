package notify

import (
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type sendgridDispatcher struct {
	key     string
	from    *sgmail.Email
	appName string
}

var _ Dispatcher = (*sendgridDispatcher)(nil)

func NewSendgrid(key, from, appName string) *sendgridDispatcher {
	return &sendgridDispatcher{
		key:     key,
		from:    sgmail.NewEmail(appName, from),
		appName: appName,
	}
}

func (d *sendgridDispatcher) ReportCardsReady(notices ...ReportCardNotice) {
	for _, n := range notices {
		msg, ok := buildMessage(d.appName, n)
		if !ok {
			continue
		}
		go d.send(msg)
	}
}

func (d *sendgridDispatcher) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Address))

	m := sgmail.NewV3Mail()
	m.SetFrom(d.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	return m
}

func (d *sendgridDispatcher) send(msg Message) {
	req := sendgrid.GetRequest(d.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(d.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		log.Printf("[ERROR] sendgrid %s: %v", msg.To.Address, err)
	} else if res.StatusCode >= http.StatusBadRequest {
		log.Printf("[ERROR] sendgrid %s status=%d body=%s", msg.To.Address, res.StatusCode, res.Body)
	}
}
