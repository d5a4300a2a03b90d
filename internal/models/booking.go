package models

import (
	"strconv"
	"strings"
)

// BookingStatus 预约状态
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// IsTerminal 是否为终态（不允许再流转）
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BookingType 预约类型
type BookingType string

const (
	BookingCharging     BookingType = "Charging"
	BookingMechanic     BookingType = "Mechanic"
	BookingInstallation BookingType = "Installation"
)

// PaymentMethod 支付方式（仅作为标签，不涉及支付处理）
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "Online"
	PaymentCash   PaymentMethod = "Cash"
)

// DefaultCurrency 默认货币
const DefaultCurrency = "INR"

// Booking 预约记录
// 金额以最小货币单位存储，Price 为展示用格式化字符串，
// 兼容旧存档（只有格式化字符串的记录在 Normalize 时回填 PriceMinor）
type Booking struct {
	ID            string        `json:"id"`
	Type          BookingType   `json:"type"`
	Title         string        `json:"title"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Status        BookingStatus `json:"status"`
	PriceMinor    int64         `json:"price_minor"`
	Currency      string        `json:"currency"`
	Price         string        `json:"price"` // 展示用，如 "₹450.00"
	PaymentMethod PaymentMethod `json:"payment_method"`
	Location      string        `json:"location"`
	VehicleID     string        `json:"vehicle_id"`
	UserName      string        `json:"user_name,omitempty"`
	UserAvatar    string        `json:"user_avatar,omitempty"`
}

// Normalize 补全金额字段
// 旧记录只带格式化价格字符串，新记录以 PriceMinor 为准
func (b *Booking) Normalize() {
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	if b.PriceMinor == 0 && b.Price != "" {
		b.PriceMinor = ParsePriceString(b.Price)
	}
	if b.Price == "" {
		b.Price = FormatMinor(b.PriceMinor)
	}
}

// ParsePriceString 从格式化价格字符串解析最小货币单位金额
// 去掉货币符号和千分位分隔符，无法解析时按 0 处理
func ParsePriceString(s string) int64 {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f*100 + 0.5)
}

// FormatMinor 格式化最小货币单位金额为展示字符串，如 149900 -> "₹1,499.00"
func FormatMinor(minor int64) string {
	rupees := minor / 100
	paise := minor % 100

	digits := strconv.FormatInt(rupees, 10)
	var sb strings.Builder
	sb.WriteString("₹")
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteString(",")
		}
		sb.WriteRune(d)
	}
	sb.WriteString(".")
	if paise < 10 {
		sb.WriteString("0")
	}
	sb.WriteString(strconv.FormatInt(paise, 10))
	return sb.String()
}
