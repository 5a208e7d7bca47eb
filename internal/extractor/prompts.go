package extractor

// The prompts are part of the wire contract with the model: the labels they
// demand are the same labels the card package matches on, so they stay in
// Portuguese and are fixed here.

// PromptCNH drives the full driver's-license extraction (structured path).
const PromptCNH = `Você é um extrator especializado em CNH brasileira (modelo antigo em papel/plástico).
Extraia os CAMPOS solicitados de forma factual, sem inferências. Se um campo não existir ou estiver ilegível, use "-".
Datas sempre em DD/MM/AAAA. CPF como XXX.XXX.XXX-YY.

ATENÇÃO:
- “Número de registro CNH” = o **nº registro** do quadro superior direito, em VERMELHO, com 11 dígitos.
  - Se esse número NÃO existir, use o número vertical/rodapé em PRETO, com 10 dígitos.
- “Registro” = RG do espelho (geralmente 6–8 dígitos). Não confundir com o nº de registro da CNH.
- “Data de nascimento” deve vir do campo “DATA DE NASC.” da CNH.

IMPORTANTE: RESPONDA EM JSON válido conforme o schema chamado "cnh_card".`

// PromptVerify drives the narrow second pass that disambiguates the digit
// fields a first pass commonly confuses.
const PromptVerify = `Observe a imagem da CNH e responda em CINCO linhas, exatamente neste formato:

DOB: <DD/MM/AAAA ou ->
RG: <apenas dígitos 6-10 ou ->
CNH_REG_11: <11 dígitos do “nº registro” em vermelho (NÃO é CPF) ou ->
CNH_REG_10: <10 dígitos do número vertical/rodapé preto ou ->
CPF: <11 dígitos do CPF ou ->

Regras:
- CNH_REG_11 NUNCA deve ser o CPF. Se só encontrar o CPF (11 dígitos), retorne '-' em CNH_REG_11.
- Não explique. Não adicione nada além dessas cinco linhas.`

// PromptVeiculo asks for a flat labeled-line card for vehicle documents.
const PromptVeiculo = `Você é um extrator especializado em documentos de veículos brasileiros (CRLV/CRV).
Retorne um cartão em texto com os campos abaixo, um por linha no formato
"CAMPO: valor". Se algum campo estiver ausente ou ilegível, use "-".

Campos:
PLACA
RENAVAM
ANO EXERCICIO
ANO MODELO
ANO FABRICACAO
CATEGORIA
CAPACIDADE
POTENCIA
PESO BRUTO
MOTOR
CMT
EIXOS
LOTACAO
CARROCERIA
NOME
CPF/CNPJ
LOCAL
DATA
CODIGO CLA
CAT
MARCA/MODELO
ESPÉCIE/TIPO
PLACA ANTERIOR
CHASSI
COR
COMBUSTIVEL
OBS`

// PromptCTEPreview asks for the WhatsApp preview card of a freight manifest.
const PromptCTEPreview = `Você é um especialista em documentos fiscais brasileiros (CT-e). Analise a imagem/PDF e produza APENAS UM TEXTO organizado para pré-visualização no WhatsApp, em português do Brasil, com as linhas abaixo. Preencha '-' quando não encontrar. Não invente dados.

📄 CT-e (resumo)
Chave: {chave}
Número: {numero}
Série: {serie}
Emissão: {data_emissao}
Emitente: {emitente_nome} | CNPJ: {emitente_cnpj}
Tomador: {tomador_nome} | CNPJ: {tomador_cnpj}
Remetente: {remetente_nome} | CNPJ: {remetente_cnpj}
Destinatário: {destinatario_nome} | CNPJ: {destinatario_cnpj}
Origem: {municipio_origem}/{uf_origem}
Destino: {municipio_destino}/{uf_destino}
Modal: {modal}
CFOP: {cfop}
Valor total: {valor_total}
Peso bruto (kg): {peso_bruto}
Volumes: {qtd_volumes}
Observações: {obs}

Regras:
- Se houver várias seções, use o que for do CT-e principal (não do MDF-e).
- Mantenha exatamente os rótulos acima e substitua apenas os valores entre chaves.`

// PromptCTEKey asks only for the 44-digit access key.
const PromptCTEKey = `Você é um especialista em documentos fiscais brasileiros (CT-e). Extraia apenas a *chave de acesso* de 44 dígitos do documento fornecido. Responda somente com os 44 dígitos; se não encontrar, responda 'NAO_ENCONTRADO'.`

const (
	systemExpectJSON = "Extraia exatamente os campos solicitados e RESPONDA EM JSON."
	systemExpectCard = "Extraia exatamente os campos solicitados e responda apenas com o cartão em texto."
	systemVerify     = "Responda estritamente no formato solicitado (json não é necessário)."
)

// FallbackMessage is shown when every extraction stage came back empty.
const FallbackMessage = "Não consegui ler as informações do documento."
