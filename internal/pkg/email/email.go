package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendVerificationCode 发送邮箱验证码
func (s *Service) SendVerificationCode(to, code string) error {
	subject := "验证码 - EngReddit 英语学习社区"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #ff4500;">邮箱验证</h2>
        <p>您好，</p>
        <p>您正在注册 EngReddit 英语学习社区账号，验证码为：</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
            %s
        </div>
        <p>验证码有效期为 10 分钟，请尽快完成验证。</p>
        <p>如果您没有进行此操作，请忽略此邮件。</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, code)

	return s.sendHTML(to, subject, body)
}

// SendWelcome 发送欢迎邮件
func (s *Service) SendWelcome(to, username string) error {
	subject := "欢迎加入 - EngReddit 英语学习社区"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #ff4500;">欢迎加入！</h2>
        <p>您好，%s！</p>
        <p>感谢您注册 EngReddit 英语学习社区。</p>
        <p>现在您可以：</p>
        <ul>
            <li>在感兴趣的社区发帖提问、分享学习心得</li>
            <li>参与嵌套讨论，和其他学习者互相纠错</li>
            <li>通过投票为优质内容积累 karma</li>
        </ul>
        <p>开始探索吧！</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">此邮件由系统自动发送，请勿回复。</p>
    </div>
</body>
</html>
`, username)

	return s.sendHTML(to, subject, body)
}

// sendHTML 发送 HTML 邮件
func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
