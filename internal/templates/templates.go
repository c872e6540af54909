package templates

import _ "embed"

//go:embed receipt.html
var ReceiptHTML string
