package gemini

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// systemInstruction 助手人设指令
const systemInstruction = "You are the powerNest AI Assistant. You help users find EV chargers, " +
	"troubleshoot vehicle issues, and suggest maintenance. Always be helpful, concise, and focused " +
	"on EV topics. If asked about charging locations, provide specific types (Level 2, DC Fast) " +
	"and mention price trends."

// fallbackText 服务异常时的兜底回复
const fallbackText = "I'm having trouble connecting to my brain right now. Please try again later."

// 引用类型
const (
	CitationKindMap = "map" // 地图位置引用
	CitationKindWeb = "web" // 普通网页引用
)

// Coordinates 请求附带的用户坐标（可选）
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Citation 回答附带的溯源引用
type Citation struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Answer 助手回答
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Advisor Gemini 智能助手客户端
type Advisor struct {
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewAdvisor 创建助手客户端，apiKey 为空时返回未配置的客户端
func NewAdvisor(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Advisor, error) {
	if apiKey == "" {
		return &Advisor{logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	// 启用 Google 搜索溯源
	model.Tools = []*genai.Tool{
		{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}},
	}

	return &Advisor{model: model, logger: logger}, nil
}

// IsConfigured 检查是否已配置 API Key
func (a *Advisor) IsConfigured() bool {
	return a.model != nil
}

// Ask 发起一次问答
// 失败时返回兜底文案和空引用列表，从不向调用方抛出错误
func (a *Advisor) Ask(ctx context.Context, query string, coords *Coordinates) *Answer {
	if !a.IsConfigured() {
		a.logger.Warn("Gemini api key not configured, returning fallback answer")
		return &Answer{Text: fallbackText, Citations: []Citation{}}
	}

	prompt := "User is asking about EV charging or servicing: " + query
	if coords != nil {
		// 定位被拒绝时 coords 为空，照常发起请求
		prompt += fmt.Sprintf(" (user location: %.6f,%.6f)", coords.Lat, coords.Lng)
	}

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		a.logger.Error("Gemini generate failed", zap.Error(err))
		return &Answer{Text: fallbackText, Citations: []Citation{}}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		a.logger.Warn("Gemini returned no candidates")
		return &Answer{Text: fallbackText, Citations: []Citation{}}
	}

	candidate := resp.Candidates[0]

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	text := sb.String()
	if text == "" {
		return &Answer{Text: fallbackText, Citations: []Citation{}}
	}

	return &Answer{
		Text:      text,
		Citations: extractCitations(candidate),
	}
}

// extractCitations 从候选结果中提取溯源引用
func extractCitations(candidate *genai.Candidate) []Citation {
	citations := []Citation{}
	if candidate.CitationMetadata == nil {
		return citations
	}

	for _, src := range candidate.CitationMetadata.CitationSources {
		if src.URI == nil || *src.URI == "" {
			continue
		}
		citations = append(citations, classifyCitation(*src.URI))
	}
	return citations
}

// classifyCitation 按 URI 区分地图位置引用和普通网页引用
func classifyCitation(uri string) Citation {
	kind := CitationKindWeb
	title := uri

	if u, err := url.Parse(uri); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Host, "www.")
		title = host
		if strings.Contains(host, "google.") && strings.Contains(u.Path, "maps") {
			kind = CitationKindMap
		}
	}

	return Citation{Kind: kind, Title: title, URI: uri}
}
