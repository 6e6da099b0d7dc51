package payments

// UpdateInput carries the fields an admin can change on the payment
// instructions. Nil pointers leave the stored value untouched.
type UpdateInput struct {
	WechatQR     *string
	WechatID     *string
	USDTQr       *string
	USDTAddress  *string
	Description1 *string
	Description2 *string
}

// View is the public shape of the payment instructions.
type View struct {
	WechatQR     *string `json:"wechat_qr,omitempty"`
	WechatID     *string `json:"wechat_id,omitempty"`
	USDTQr       *string `json:"usdt_qr,omitempty"`
	USDTAddress  *string `json:"usdt_address,omitempty"`
	Description1 *string `json:"description1,omitempty"`
	Description2 *string `json:"description2,omitempty"`
}
