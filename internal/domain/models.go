package domain

// TenantCredentials holds the connection parameters for one tenant database,
// resolved fresh from the master registry on every request.
type TenantCredentials struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	Charset  string
}

// ExtractionResult is what the upload pipeline hands back to the bot:
// a human-reviewable card plus, for freight manifests, the access key.
type ExtractionResult struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Ocorrencia is a free-text occurrence attached to a delivery.
type Ocorrencia struct {
	Nomovtra int    `json:"nomovtra"`
	Texto    string `json:"texto"`
	Usuario  string `json:"usuario"`
}

// CTEInfo is the driver-facing summary of a freight manifest record.
type CTEInfo struct {
	Status    *string  `json:"statuscte"`
	DataEmi   *string  `json:"dataemi"`
	TotalPeso *float64 `json:"totalpeso"`
	Nomovtra  *int     `json:"nomovtra"`
	Motivo    *string  `json:"motivo"`
}

// EntregaInfo is the driver-facing summary of a delivery record.
type EntregaInfo struct {
	Numero        *int    `json:"numero"`
	DataPrevista  *string `json:"data_prevista"`
	DataEntrega   *string `json:"data_entrega"`
	ClienteNome   *string `json:"cliente_nome"`
	ClienteCNPJ   *string `json:"cliente_cnpj"`
	MotoristaNome *string `json:"motorista_nome"`
	Placa         *string `json:"placa"`
	ValorTotal    *string `json:"valor_total"`
}
