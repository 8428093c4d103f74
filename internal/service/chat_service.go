package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/dto"
	"github.com/startupviet/advisor-api/internal/models"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

// replyTemplate is one canned advisory answer. The %s verb receives a short
// excerpt of the visitor's question.
type replyTemplate struct {
	body       string
	references []models.DocumentReference
}

// ChatService produces scripted Vietnamese advisory replies. There is no
// language model behind it; a template is picked at random and the question
// excerpt is spliced in so the answer reads as if it addressed the question.
type ChatService struct {
	templates     []replyTemplate
	excerptLength int
	pick          func(n int) int
	logger        *zap.Logger
}

// NewChatService constructs the responder. excerptLength bounds how much of
// the question is echoed back, counted in runes so Vietnamese text is not cut
// mid-character.
func NewChatService(excerptLength int, logger *zap.Logger) *ChatService {
	if excerptLength <= 0 {
		excerptLength = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &ChatService{
		templates:     cannedReplies,
		excerptLength: excerptLength,
		pick:          rng.Intn,
		logger:        logger,
	}
}

// Reply answers a chat message with one of the canned templates.
func (s *ChatService) Reply(ctx context.Context, message string) (*dto.ChatResponse, error) {
	if message == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "message is required")
	}

	tpl := s.templates[s.pick(len(s.templates))]
	resp := &dto.ChatResponse{
		Response:   fmt.Sprintf(tpl.body, s.excerpt(message)),
		References: tpl.references,
	}

	s.logger.Debug("chat reply produced", zap.Int("references", len(resp.References)))
	return resp, nil
}

func (s *ChatService) excerpt(message string) string {
	runes := []rune(message)
	if len(runes) <= s.excerptLength {
		return message
	}
	return string(runes[:s.excerptLength])
}

var cannedReplies = []replyTemplate{
	{
		body: `Dựa trên câu hỏi của bạn về "%s...", tôi xin tư vấn như sau:

## Phân tích ban đầu

Để giải quyết vấn đề này hiệu quả, bạn cần chú ý đến các yếu tố sau:

• Xác định rõ mục tiêu cụ thể mà bạn muốn đạt được
• Phân tích nguồn lực hiện có (tài chính, con người, thời gian)
• Đánh giá rủi ro và lập kế hoạch dự phòng
• Thiết lập các chỉ số đo lường thành công (KPIs)

## Khuyến nghị cụ thể

1. **Giai đoạn đầu**: Tập trung xây dựng MVP (Minimum Viable Product) để test thị trường nhanh chóng

2. **Thu thập phản hồi**: Lắng nghe khách hàng và điều chỉnh sản phẩm/dịch vụ theo nhu cầu thực tế

3. **Tối ưu chi phí**: Ưu tiên các kênh marketing có ROI cao, tránh phân tán nguồn lực

Bạn có câu hỏi cụ thể nào khác không?`,
		references: []models.DocumentReference{
			{
				ID:       "doc-1",
				Title:    "Khung lập kế hoạch kinh doanh cho startup",
				Category: models.CategoryTheory,
				Excerpt:  "Kế hoạch kinh doanh là bản đồ dẫn đường cho startup của bạn. Bao gồm các thành phần: Tóm tắt điều hành, Phân tích thị trường, Mô hình kinh doanh...",
			},
		},
	},
	{
		body: `Cảm ơn bạn đã đặt câu hỏi về "%s...". Đây là một vấn đề rất quan trọng trong khởi nghiệp.

## Tình hình thị trường

Thị trường Việt Nam hiện tại đang có nhiều cơ hội cho startup, đặc biệt trong các lĩnh vực:

• Công nghệ & Digital transformation
• F&B và retail experience
• EdTech & HealthTech
• Fintech & E-commerce

## Yếu tố thành công

Để thành công trong môi trường cạnh tranh cao, bạn cần:

1. **Hiểu rõ khách hàng**: Nghiên cứu sâu về customer persona, pain points và nhu cầu thực sự

2. **Tạo điểm khác biệt**: Không chỉ làm tốt, mà phải làm khác biệt so với đối thủ

3. **Xây dựng đội ngũ mạnh**: Con người là tài sản quan trọng nhất của startup

4. **Quản lý tài chính chặt chẽ**: Dòng tiền là mạch máu của doanh nghiệp

Bạn đang ở giai đoạn nào của quá trình khởi nghiệp?`,
		references: []models.DocumentReference{
			{
				ID:       "doc-2",
				Title:    "Phân tích thị trường F&B Việt Nam 2026",
				Category: models.CategoryMarket,
				Excerpt:  "Thị trường F&B Việt Nam năm 2026 ước đạt 45 tỷ USD, tăng trưởng 8-10%. Xu hướng nổi bật: Healthy & Organic, Convenience & Delivery, Experience & Ambiance...",
			},
			{
				ID:       "doc-3",
				Title:    "Chính sách hỗ trợ khởi nghiệp Việt Nam 2026",
				Category: models.CategoryPolicy,
				Excerpt:  "Quỹ hỗ trợ khởi nghiệp quốc gia với tổng vốn 5,000 tỷ VNĐ, hỗ trợ đến 70% vốn đầu tư, tối đa 3 tỷ VNĐ/dự án. Miễn thuế 4 năm đầu cho startup...",
			},
		},
	},
}
