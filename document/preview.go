package document

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"bidcond-backend/models"
)

// PreviewInput carries everything the preview renderer needs for one estimate
type PreviewInput struct {
	ProjectInfo models.ProjectInfo
	WorkType    string
	Conditions  []models.SelectedClause
	RenderedAt  time.Time
}

type previewData struct {
	ProjectInfo       models.ProjectInfo
	Title             string
	IssueDate         string
	OrderVolumeRate   string
	ExemptionRate     string
	ContactRole       string
	ContactName       string
	SuppliedMaterials string
	CustomConditions  []previewCondition
	Sections          []previewSection
	RenderedAt        string
	TotalConditions   int
}

type previewSection struct {
	Title          string
	SequenceNumber int
	Conditions     []previewCondition
}

type previewCondition struct {
	Number    int
	Text      string
	Detail    string
	Important bool
	Forced    bool
	ImageURLs []string
}

var previewTmpl = template.Must(template.New("preview").Parse(previewHTML))

// RenderPreview produces the document body markup for the current selection.
// The markup is what the export pipeline normalizes and wraps into the final
// print document.
func RenderPreview(in PreviewInput) (string, error) {
	sections := GroupSections(in.Conditions)
	custom := CustomClauses(in.Conditions)

	data := previewData{
		ProjectInfo:       in.ProjectInfo,
		Title:             "공종별견적조건(현장)",
		IssueDate:         in.RenderedAt.Format("2006.01"),
		OrderVolumeRate:   fmt.Sprintf("%.2f", in.ProjectInfo.OrderVolumeRate),
		ExemptionRate:     fmt.Sprintf("%.2f", in.ProjectInfo.ExemptionRate),
		ContactRole:       in.ProjectInfo.ContactRole,
		ContactName:       in.ProjectInfo.ContactName,
		SuppliedMaterials: SuppliedMaterials(in.Conditions),
		RenderedAt:        in.RenderedAt.Format("2006-01-02 15:04:05"),
		TotalConditions:   len(in.Conditions),
	}
	if in.WorkType != "" {
		data.Title = in.WorkType + " 공종별견적조건(현장)"
	}
	if data.ContactRole == "" {
		data.ContactRole = "공무"
	}
	if data.ContactName == "" {
		data.ContactName = "000"
	}

	for i, c := range custom {
		data.CustomConditions = append(data.CustomConditions, previewCondition{
			Number: i + 1,
			Text:   c.Text,
			Forced: c.Forced,
		})
	}

	for _, s := range sections {
		ps := previewSection{Title: s.Title, SequenceNumber: s.SequenceNumber}
		for i, c := range s.Conditions {
			pc := previewCondition{
				Number:    i + 1,
				Text:      c.Text,
				Important: c.Important(),
				Forced:    c.Forced,
			}
			// Catalog detail text; hidden unless the detailed template shows it
			if c.Detail != "" && c.Detail != c.Text {
				pc.Detail = c.Detail
			}
			for _, att := range c.Attachments {
				pc.ImageURLs = append(pc.ImageURLs, "/api/images/"+att.ID.String())
			}
			ps.Conditions = append(ps.Conditions, pc)
		}
		data.Sections = append(data.Sections, ps)
	}

	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return buf.String(), nil
}

const previewHTML = `<div class="max-w-4xl mx-auto">
<div class="doc-header mb-8 border border-gray-300 bg-white">
  <div class="flex items-start p-4">
    <div class="flex-1 ml-8">
      <div class="grid grid-cols-2 gap-8 text-sm">
        <div class="flex items-center">
          <span class="w-16 text-gray-600">현장명:</span>
          <span class="flex-1 border-b border-gray-300 min-w-0">{{if .ProjectInfo.Name}}{{.ProjectInfo.Name}}{{else}}-{{end}}</span>
        </div>
        <div class="flex items-center">
          <span class="w-16 text-gray-600">작성일자:</span>
          <span class="flex-1 border-b border-gray-300 min-w-0">{{.IssueDate}}</span>
        </div>
        <div class="flex items-center">
          <span class="w-16 text-gray-600">제목:</span>
          <span class="flex-1 border-b border-gray-300 min-w-0">{{.Title}}</span>
        </div>
        <div class="flex items-center">
          <span class="w-16 text-gray-600">페이지:</span>
          <span class="flex-1 border-b border-gray-300 min-w-0">-</span>
        </div>
      </div>
    </div>
  </div>
</div>

<div class="mb-6">
  <h2 class="font-bold text-lg">1. 현장 일반사항</h2>
  <div class="mt-3 text-sm space-y-3">
    <div class="text-pretty pl-6"><span class="font-medium">1)</span> 본 입찰의 현장설명회는 On-line으로만 진행하며, 별도 Off-line 현장설명회가 진행되지 않으므로, 견적조건을 포함한 입찰안내 서류를 면밀히 숙지하고 투찰한다.</div>
    <div class="text-pretty pl-6"><span class="font-medium">2) [발주 물량 공지]</span> 금회 발주 물량은 전체 예상 물량의 약 <strong class="text-right">{{.OrderVolumeRate}}%</strong> 수준이며, 내역 확정 후 증감수량은 변경계약을 통하여 반영예정임</div>
    <div class="text-pretty pl-6"><span class="font-medium">3) 지급자재 :</span> {{.SuppliedMaterials}}</div>
    <div class="text-pretty pl-6"><span class="font-medium">4) 담당자 :</span> {{.ContactRole}} {{.ContactName}} 전임</div>
  </div>
</div>

<div class="mb-6">
  <h2 class="font-bold text-lg">2. VAT 금액 산정</h2>
  <div class="mt-3 text-sm space-y-3">
    <div class="pl-6">1) 아파트 면세율 : {{.ExemptionRate}}%</div>
    <div class="pl-6">2) 면세 적용에 따른 VAT 금액 산출</div>
    <div class="ml-6 mt-3">
      <div class="border border-gray-300 rounded-md overflow-hidden">
        <div class="grid grid-cols-2">
          <div class="text-center font-medium border-b border-gray-300 border-r bg-gray-50 py-2 text-sm">면세</div>
          <div class="text-center font-medium border-b border-gray-300 bg-gray-50 py-2 text-sm">과세</div>
        </div>
        <div class="grid grid-cols-2">
          <div class="border-r border-gray-300 p-3 text-sm">
            <div class="font-medium">&quot;아파트+주차장+부속동&quot;의 직접비 계</div>
            <div class="text-sm text-gray-600 mt-1">× 아파트면세율({{.ExemptionRate}}%) × 0%</div>
          </div>
          <div class="p-3 text-sm">
            <div class="font-medium">1) &quot;아파트+주차장+부속동&quot;의 직접비 계</div>
            <div class="text-sm text-gray-600 mt-1">× (100% - 아파트면세율({{.ExemptionRate}}%)) × 10%</div>
            <div class="font-medium mt-2">2) 상가 직접비 × 10%</div>
          </div>
        </div>
      </div>
      <div class="mt-3 text-sm text-gray-500">* 간접비는 직접비총액 중 과세금액(아파트+주차장+부속동 과세금액 및 상가금액) 비율 적용</div>
    </div>
  </div>
</div>

<div class="mb-6">
  <h2 class="font-bold text-lg">3. 하자보증기간 안내</h2>
  <div class="mt-3 text-sm pl-6">• 공동주택 2년</div>
</div>

<div class="mb-6">
  <h2 class="font-bold text-lg">4. 설계도서 및 기술자료 열람</h2>
  <div class="mt-3 text-sm space-y-2 pl-6">
    <div class="text-pretty"><span class="font-medium">1)</span> 아래 URL을 통해 실시설계 자료를 확인한다.</div>
    <div class="text-pretty"><span class="font-medium">2)</span> URL: {{if .ProjectInfo.DocsURL}}<a href="{{.ProjectInfo.DocsURL}}" class="text-blue-600 underline">{{.ProjectInfo.DocsURL}}</a>{{else}}<span class="text-gray-400">미등록</span>{{end}}</div>
    <div class="text-pretty"><span class="font-medium">3)</span> 패스워드: {{if .ProjectInfo.DocsPassword}}{{.ProjectInfo.DocsPassword}}{{else}}<span class="text-gray-400">미등록</span>{{end}}</div>
  </div>
</div>

<div class="mb-6">
  <h2 class="font-bold text-lg">5. 현장 기본조건</h2>
  <div class="space-y-2 mt-3 text-sm leading-6">
    {{if .CustomConditions}}{{range .CustomConditions}}
    <div class="text-pretty pl-6{{if .Forced}} bg-yellow-100 px-2 py-1 rounded border-l-4 border-yellow-400{{end}}"><span class="font-medium">{{.Number}})</span> {{.Text}}</div>
    {{end}}{{else}}
    <div class="text-gray-500 pl-6">기본조건이 선택되지 않았습니다.</div>
    {{end}}
  </div>
</div>

{{range .Sections}}
<div class="mb-6">
  <h2 class="font-bold text-lg">{{.SequenceNumber}}. {{.Title}}</h2>
  <div class="space-y-2 mt-3 text-sm leading-6">
    {{range .Conditions}}
    <div class="text-pretty pl-6{{if .Forced}} bg-yellow-100 px-2 py-1 rounded border-l-4 border-yellow-400{{end}}">
      <div><span class="font-medium">{{.Number}})</span> {{.Text}}{{if .Important}}<span class="ml-2 text-red-600 font-semibold">[중요]</span>{{end}}</div>
      {{if .Detail}}
      <div class="clause-detail ml-4 mt-1 text-xs text-gray-600">{{.Detail}}</div>
      {{end}}
      {{if .ImageURLs}}
      <div class="ml-4 mt-2">
        {{range .ImageURLs}}<img src="{{.}}" alt="첨부 이미지" class="object-contain border border-gray-300 rounded">{{end}}
      </div>
      {{end}}
    </div>
    {{end}}
  </div>
</div>
{{end}}

<div class="doc-footer mt-10 pt-6 border-t border-gray-200 text-center text-xs text-gray-500">
  <div>본 견적조건서는 견적 조건서 생성기를 통해 생성되었습니다.</div>
  <div>생성일시: {{.RenderedAt}}</div>
  <div>총 조건 수: {{.TotalConditions}}개</div>
</div>
</div>`
