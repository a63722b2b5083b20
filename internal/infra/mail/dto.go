package mail

type WelcomeEmailData struct {
	Contact string
	Company string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
