package envelope

// Body 是所有API响应的统一信封结构。
// 预期中的业务条件（没有活动轮次、投注已截止等）通过 Success=false 加稳定的
// Message 表达，并保持HTTP 200；4xx/5xx只用于认证和基础设施错误。
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK 构造一个携带数据的成功响应。
func OK(data interface{}) Body {
	return Body{Success: true, Message: "", Data: data}
}

// OKWithMessage 构造一个携带提示消息的成功响应。
func OKWithMessage(message string, data interface{}) Body {
	return Body{Success: true, Message: message, Data: data}
}

// Fail 构造一个业务失败响应。Data固定为空对象，与前端的约定保持一致。
func Fail(message string) Body {
	return Body{Success: false, Message: message, Data: struct{}{}}
}
