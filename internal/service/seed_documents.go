package service

import "github.com/startupviet/advisor-api/internal/models"

// seedDocuments are the approved advisory articles available on first boot.
var seedDocuments = []models.Document{
	{
		ID:       "doc-1",
		Title:    "Khung lập kế hoạch kinh doanh cho startup",
		Category: models.CategoryTheory,
		Author:   "Nguyễn Văn A",
		Status:   models.StatusApproved,
		Content: `# Khung lập kế hoạch kinh doanh cho startup

Kế hoạch kinh doanh là bản đồ dẫn đường cho startup của bạn. Dưới đây là các thành phần cốt lõi:

## 1. Tóm tắt điều hành (Executive Summary)

Đây là phần quan trọng nhất, nên viết cuối cùng. Bao gồm:
- Tầm nhìn và sứ mệnh
- Sản phẩm/dịch vụ cốt lõi
- Thị trường mục tiêu
- Lợi thế cạnh tranh
- Dự báo tài chính tóm tắt

## 2. Phân tích thị trường

Hiểu rõ thị trường là chìa khóa thành công:
- Quy mô thị trường (TAM, SAM, SOM)
- Xu hướng ngành
- Phân khúc khách hàng
- Phân tích đối thủ cạnh tranh

## 3. Mô hình kinh doanh

Làm thế nào để tạo ra doanh thu?
- Luồng doanh thu
- Cơ cấu chi phí
- Đơn vị kinh tế (unit economics)
- Chiến lược định giá

## 4. Kế hoạch vận hành

Chi tiết cách thức thực hiện:
- Quy trình sản xuất/phát triển
- Chuỗi cung ứng
- Đội ngũ và tổ chức
- Công nghệ và hạ tầng

## 5. Chiến lược marketing và bán hàng

Làm sao để tiếp cận khách hàng?
- Định vị thương hiệu
- Kênh marketing (online/offline)
- Chiến lược content
- Quy trình bán hàng

## 6. Dự báo tài chính

Số liệu cụ thể trong 3-5 năm:
- Dự báo doanh thu
- Chi phí vận hành
- Lợi nhuận/lỗ
- Dòng tiền (cash flow)
- Điểm hòa vốn (break-even)

## Lời khuyên quan trọng

• Hãy thực tế và dựa trên số liệu
• Cập nhật thường xuyên khi có thông tin mới
• Sử dụng kế hoạch như công cụ quản lý, không chỉ để gọi vốn
• Chuẩn bị cho nhiều kịch bản (best case, base case, worst case)`,
		Attachments: []models.Attachment{
			{
				ID:   "att-1",
				Name: "Business_Plan_Template_2026.pdf",
				Size: 2458000,
				Type: models.AttachmentPDF,
				URL:  "https://example.com/business-plan-template.pdf",
			},
			{
				ID:   "att-2",
				Name: "Financial_Model_Startup.xlsx",
				Size: 1024000,
				Type: models.AttachmentDocx,
				URL:  "https://example.com/financial-model.xlsx",
			},
		},
		CreatedAt: seedTime("2026-01-15T10:00:00Z"),
	},
	{
		ID:       "doc-2",
		Title:    "Phân tích thị trường F&B Việt Nam 2026",
		Category: models.CategoryMarket,
		Author:   "Trần Thị B",
		Status:   models.StatusApproved,
		Content: `# Phân tích thị trường F&B Việt Nam 2026

Thị trường ẩm thực (F&B) tại Việt Nam đang có những biến động đáng chú ý.

## Tổng quan thị trường

Thị trường F&B Việt Nam năm 2026 ước đạt 45 tỷ USD, tăng trưởng 8-10% so với năm trước.

### Động lực tăng trưởng chính:

- Thu nhập bình quân tăng cao
- Tầng lớp trung lưu mở rộng
- Xu hướng ăn uống ngoài gia đình tăng
- Thế hệ Gen Z và Millennials chiếm tỷ trọng lớn

## Xu hướng tiêu dùng nổi bật

### 1. Healthy & Organic

Người tiêu dùng ngày càng quan tâm đến sức khỏe:
- Thực phẩm hữu cơ tăng 25% năm/năm
- Low-carb, plant-based phát triển mạnh
- Minh bạch nguồn gốc nguyên liệu

### 2. Convenience & Delivery

Dịch vụ giao hàng là must-have:
- 70% người dùng đặt đồ ăn online thường xuyên
- Dark kitchen, cloud kitchen phát triển
- Thời gian giao hàng rút ngắn xuống < 30 phút

### 3. Experience & Ambiance

Không chỉ ăn, mà còn trải nghiệm:
- Instagram-able space
- Câu chuyện thương hiệu độc đáo
- Tương tác với khách hàng qua social media

## Phân khúc thị trường

### Premium (20% thị trường)
- Fine dining, fusion cuisine
- Giá trung bình: 500k-2M/người
- Khách hàng: thu nhập cao, expat

### Mid-range (50% thị trường)
- Chuỗi nhà hàng, quán cafe
- Giá: 100k-500k/người
- Phân khúc cạnh tranh nhất

### Budget (30% thị trường)
- Quán ăn đường phố, food court
- Giá: < 100k/người
- Khối lượng lớn, margin thấp

## Thách thức cho startup F&B

• Cạnh tranh khốc liệt, tỷ lệ đóng cửa cao (40% trong 2 năm đầu)
• Chi phí mặt bằng và nhân sự tăng cao
• Khó duy trì chất lượng ổn định khi scale
• Quản lý dòng tiền phức tạp

## Cơ hội

• Niche markets chưa khai thác (dietary restrictions, local cuisine hiện đại)
• Công nghệ F&B tech (POS, CRM, inventory)
• Mô hình franchise, multi-brand
- Xuất khẩu văn hóa ẩm thực Việt`,
		Attachments: []models.Attachment{},
		CreatedAt:   seedTime("2026-01-20T14:30:00Z"),
	},
	{
		ID:       "doc-3",
		Title:    "Chính sách hỗ trợ khởi nghiệp Việt Nam 2026",
		Category: models.CategoryPolicy,
		Author:   "Lê Văn C",
		Status:   models.StatusApproved,
		Content: `# Chính sách hỗ trợ khởi nghiệp Việt Nam 2026

Chính phủ Việt Nam đang có nhiều chương trình hỗ trợ cho startup và doanh nghiệp nhỏ.

## 1. Quỹ hỗ trợ khởi nghiệp quốc gia

### Thông tin chung:
- Tổng nguồn vốn: 5,000 tỷ VNĐ
- Hỗ trợ đến 70% vốn đầu tư
- Tối đa 3 tỷ VNĐ/dự án

### Điều kiện:
- Doanh nghiệp thành lập < 5 năm
- Có công nghệ sáng tạo hoặc giải pháp mới
- Đội ngũ sáng lập từ 2 người trở lên
- Business plan rõ ràng

### Quy trình:
1. Nộp hồ sơ online qua portal.gov.vn
2. Vòng sơ loại (15 ngày)
3. Thuyết trình trước hội đồng
4. Giải ngân theo từng milestone

## 2. Ưu đãi thuế cho startup

### Miễn thuế thu nhập doanh nghiệp:
- 4 năm đầu: 0% thuế
- 9 năm tiếp theo: 50% mức thuế suất

### Điều kiện áp dụng:
- Doanh thu < 50 tỷ VNĐ/năm
- Hoạt động trong lĩnh vực ưu tiên (tech, giáo dục, y tế, nông nghiệp công nghệ cao)

## 3. Không gian làm việc miễn phí

### Chương trình Co-working Space:
- 120+ không gian tại 63 tỉnh thành
- Miễn phí 12 tháng đầu
- Kết nối mentor, investor

## 4. Chương trình đào tạo và mentorship

### Startup Academy:
- 16 tuần đào tạo chuyên sâu
- Mentor 1-1 từ founder thành công
- Demo Day với investor

## 5. Hỗ trợ vốn từ các tổ chức

### Quỹ đầu tư khởi nghiệp sáng tạo:
- 500 Startups Vietnam
- Touchstone Partners
- Vietnam Silicon Valley

### Angel Investors Network:
- VBAN (Vietnam Business Angel Network)
- Kết nối startup với 200+ angel investors

## 6. Thủ tục hành chính đơn giản hóa

### Đăng ký doanh nghiệp online:
- 3 ngày làm việc
- Không cần công chứng hầu hết giấy tờ
- Hệ thống một cửa điện tử

## Lưu ý quan trọng

• Cập nhật thông tin thường xuyên trên cổng khởi nghiệp quốc gia
• Tham gia cộng đồng startup để nhận thông tin sớm
• Chuẩn bị hồ sơ đầy đủ và kỹ lưỡng
• Tận dụng kết hợp nhiều chương trình hỗ trợ

## Liên hệ

Website: khoinghiep.gov.vn
Hotline: 1900-xxxx
Email: hotro@khoinghiep.gov.vn`,
		Attachments: []models.Attachment{},
		CreatedAt:   seedTime("2026-02-01T09:00:00Z"),
	},
}
