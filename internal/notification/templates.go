package notification

import "fmt"

func EnrollmentActivated(toEmail, courseTitle string) Message {
	return Message{
		Subject: "Enrollment confirmed",
		Body:    fmt.Sprintf("Your payment was confirmed and your enrollment in %q is now active.", courseTitle),
		ToEmail: toEmail,
	}
}

func CertificateIssued(toEmail, courseTitle string) Message {
	return Message{
		Subject: "Course completed",
		Body:    fmt.Sprintf("Congratulations! You completed %q and your certificate has been issued.", courseTitle),
		ToEmail: toEmail,
	}
}
