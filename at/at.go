package at

const (
	// Terminal Control
	CRLF   = "\r\n"
	Prompt = ">"

	// Response Codes
	OK       = "OK"
	ERROR    = "ERROR"
	Fail     = "FAIL"
	SendOK   = "SEND OK"
	SendFail = "SEND FAIL"

	// Commands
	CmdEchoOff     = "ATE0"
	CmdVersion     = "AT+GMR"
	CmdStationMode = "AT+CWMODE=1"
	CmdJoinAP      = "AT+CWJAP"
	CmdLocalIP     = "AT+CIFSR"
	CmdStart       = "AT+CIPSTART"
	CmdSend        = "AT+CIPSEND"

	// Network type used with AT+CIPSTART
	TCP = "TCP"
)

type ResponseType int

const (
	TypeFinal  ResponseType = iota // OK, ERROR, SEND OK
	TypeURC                        // Asynchronous notifications (WIFI CONNECTED, CLOSED)
	TypeData                       // Intermediate command output (+CIFSR:STAIP,...)
	TypePrompt                     // CIPSEND input prompt
)
