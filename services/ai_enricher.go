package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/services/crawler"
	"github.com/deptsearch/deptsearch-api/services/digitalocean"
	"github.com/deptsearch/deptsearch-api/utils"
)

const enrichSystemPrompt = `당신은 한국 대학 입시 데이터 전문가입니다. 주어진 대학/학과 정보를 바탕으로 전년도 입시 결과와 학과 소개를 JSON으로 작성하세요.

응답 형식:
{
  "admission_prev_year": {
    "susi_gyogwa": "1.35 (70%컷)",
    "susi_jonghap": "1.52 (50%컷)",
    "jeongsi": "97.1 (70%컷)"
  },
  "summary": "한 문장 요약",
  "description": "2~3문장의 학과 소개"
}

확실하지 않은 수치는 빈 문자열로 두세요. 수치를 지어내지 마세요.`

// AIEnricher asks the inference API for prior-year admission figures and a
// department description. An optional page crawler supplies a homepage
// snippet as extra prompt context.
type AIEnricher struct {
	inference *digitalocean.InferenceClient
	pages     *crawler.PageCrawler // optional
	pageURLs  map[string]string    // university name -> homepage
}

// NewAIEnricher creates the inference-backed enricher. pages may be nil to
// skip homepage context entirely.
func NewAIEnricher(inference *digitalocean.InferenceClient, pages *crawler.PageCrawler) *AIEnricher {
	return &AIEnricher{
		inference: inference,
		pages:     pages,
		pageURLs:  universityHomepages,
	}
}

// EnrichDepartment implements Enricher. Malformed model output is an error;
// the caller keeps its local defaults.
func (e *AIEnricher) EnrichDepartment(ctx context.Context, univ *model.University, deptName string, stats *model.RecruitStats) (*EnrichmentPayload, error) {
	userPrompt := e.buildPrompt(ctx, univ, deptName, stats)

	raw, err := e.inference.JSONCompletion(ctx, enrichSystemPrompt, userPrompt,
		digitalocean.WithResponseFormatJSON(),
		digitalocean.WithInferenceTemperature(0.2),
		digitalocean.WithInferenceMaxTokens(1024),
	)
	if err != nil {
		return nil, fmt.Errorf("inference call failed: %w", err)
	}

	var payload EnrichmentPayload
	if err := utils.ExtractJSONTo(raw, &payload); err != nil {
		return nil, fmt.Errorf("unusable enrichment response: %w", err)
	}
	return &payload, nil
}

func (e *AIEnricher) buildPrompt(ctx context.Context, univ *model.University, deptName string, stats *model.RecruitStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "대학: %s (%s, %s, %s)\n", univ.Name, univ.Location, univ.Type, univ.SchoolType)
	fmt.Fprintf(&sb, "학과: %s\n", deptName)
	if college := univ.CollegeOf(deptName); college != "" {
		fmt.Fprintf(&sb, "소속 단과대학: %s\n", college)
	}
	if stats != nil {
		fmt.Fprintf(&sb, "모집인원: %d명, 지원자: %d명, 경쟁률: %.2f:1\n", stats.Recruit, stats.Applicants, stats.Rate)
	}

	if e.pages != nil {
		if url, ok := e.pageURLs[univ.Name]; ok {
			snippet, err := e.pages.FetchSnippet(ctx, url)
			if err != nil {
				log.Printf("[enrich] homepage snippet for %s skipped: %v", univ.Name, err)
			} else if snippet != "" {
				fmt.Fprintf(&sb, "홈페이지 소개: %s\n", snippet)
			}
		}
	}

	return sb.String()
}

// universityHomepages maps the handful of universities whose public pages
// are worth crawling for prompt context.
var universityHomepages = map[string]string{
	"서울대학교":   "https://www.snu.ac.kr",
	"연세대학교":   "https://www.yonsei.ac.kr",
	"고려대학교":   "https://www.korea.ac.kr",
	"성균관대학교":  "https://www.skku.edu",
	"한양대학교":   "https://www.hanyang.ac.kr",
	"서강대학교":   "https://www.sogang.ac.kr",
	"중앙대학교":   "https://www.cau.ac.kr",
	"경희대학교":   "https://www.khu.ac.kr",
	"이화여자대학교": "https://www.ewha.ac.kr",
	"부산대학교":   "https://www.pusan.ac.kr",
	"경북대학교":   "https://www.knu.ac.kr",
	"한국과학기술원": "https://www.kaist.ac.kr",
	"포항공과대학교": "https://www.postech.ac.kr",
}
