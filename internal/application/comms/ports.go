package comms

// EmailSender es la capacidad externa de envío de correo. Devuelve el
// message-id del proveedor.
type EmailSender interface {
	Send(to, subject, bodyHTML string) (messageID string, err error)
}

// SMSSender es la capacidad externa de envío de SMS. Devuelve la respuesta
// cruda de la pasarela.
type SMSSender interface {
	Send(number, message string) (gatewayResponse string, err error)
}
