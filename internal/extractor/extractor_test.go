package extractor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/caselookup/internal/model"
)

func mustParse(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := Parse([]byte(body), "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

const statusPage = `<html><body>
<table class="case">
  <tr><td>Petitioner</td><td>  ACME   Corp
  Ltd </td></tr>
  <tr><td>Respondent</td><td>State of Delhi</td></tr>
  <tr><th>Filing Date</th><td>01/02/2023</td></tr>
  <tr><td>Next Date</td><td><b>15/08/2024</b> (Tentative)</td></tr>
  <tr><td>Petitioner Advocate</td><td>Should not win</td></tr>
</table>
<ul>
  <li><a href="/orders/1.pdf">Order dated 01/03/2023</a></li>
  <li><a href="https://cdn.example.test/orders/2.PDF">  Order
     dated 04/05/2023</a></li>
  <li><a href="/orders/1.pdf">duplicate of first</a></li>
  <li><a href="/orders/3.pdf"></a></li>
  <li><a href="/orders/4.pdf" title="Judgment"></a></li>
  <li><a href="/not-an-order.html">Not an order</a></li>
</ul>
</body></html>`

// ─── Scenarios ───

func TestExtract_NoMatchesYieldsEmptyRecord(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<html><head><title>Case 123</title></head><body></body></html>`)
	rec := Default().Extract(doc)

	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"petitioner":null,"respondent":null,"filing_date":null,"next_hearing":null,"orders":[]}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestExtract_SinglePDFLink(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<a href="/doc.pdf">Order #1</a>`)
	rec := Default().Extract(doc)

	if len(rec.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(rec.Orders))
	}
	if got := rec.Orders[0]; got.Name != "Order #1" || got.URL != "/doc.pdf" {
		t.Fatalf("unexpected order %+v", got)
	}
	if rec.Petitioner != nil || rec.Respondent != nil || rec.FilingDate != nil || rec.NextHearing != nil {
		t.Fatalf("expected scalar fields absent, got %+v", rec)
	}
}

// ─── Fields ───

func TestExtract_LabelledTable(t *testing.T) {
	t.Parallel()

	rec := Default().Extract(mustParse(t, statusPage))

	cases := []struct {
		name string
		got  *string
		want string
	}{
		{"petitioner", rec.Petitioner, "ACME Corp Ltd"},
		{"respondent", rec.Respondent, "State of Delhi"},
		{"filing_date", rec.FilingDate, "01/02/2023"},
		{"next_hearing", rec.NextHearing, "15/08/2024 (Tentative)"},
	}
	for _, tc := range cases {
		if tc.got == nil {
			t.Errorf("%s: expected value, got nil", tc.name)
			continue
		}
		if *tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, *tc.got, tc.want)
		}
	}
}

func TestExtract_LabelsWrappedInInlineMarkup(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<table>
		<tr><td><b>Petitioner</b></td><td>ACME Ltd</td></tr>
		<tr><td><strong>Respondent :</strong></td><td>State</td></tr>
		<tr><td><span class="lbl">Filing Date</span></td><td>02/03/2022</td></tr>
		<tr><th><font>Next Date</font></th><td>09/09/2024</td></tr>
	</table>`)
	rec := Default().Extract(doc)

	if got := model.StringOrEmpty(rec.Petitioner); got != "ACME Ltd" {
		t.Errorf("petitioner: got %q", got)
	}
	if got := model.StringOrEmpty(rec.Respondent); got != "State" {
		t.Errorf("respondent: got %q", got)
	}
	if got := model.StringOrEmpty(rec.FilingDate); got != "02/03/2022" {
		t.Errorf("filing_date: got %q", got)
	}
	if got := model.StringOrEmpty(rec.NextHearing); got != "09/09/2024" {
		t.Errorf("next_hearing: got %q", got)
	}
}

func TestExtract_LayoutCellWithNestedTableIsNotALabel(t *testing.T) {
	t.Parallel()

	// The outer cell contains the label text but also the whole inner
	// table; only the inner label cell may match.
	doc := mustParse(t, `<table><tr>
		<td><table><tr><td>Petitioner</td><td>Inner Party</td></tr></table></td>
		<td>Sidebar</td>
	</tr></table>`)
	rec := Default().Extract(doc)

	if got := model.StringOrEmpty(rec.Petitioner); got != "Inner Party" {
		t.Fatalf("petitioner: got %q, want inner value", got)
	}
}

func TestExtract_FallbackSelectors(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div>
		<span data-field="petitioner">Jane Doe</span>
		<span id="respondent">Union of India</span>
		<p class="filing-date">2021-04-01</p>
		<p class="next-hearing">   </p>
	</div>`)
	rec := Default().Extract(doc)

	if model.StringOrEmpty(rec.Petitioner) != "Jane Doe" {
		t.Errorf("petitioner: got %v", rec.Petitioner)
	}
	if model.StringOrEmpty(rec.Respondent) != "Union of India" {
		t.Errorf("respondent: got %v", rec.Respondent)
	}
	if model.StringOrEmpty(rec.FilingDate) != "2021-04-01" {
		t.Errorf("filing_date: got %v", rec.FilingDate)
	}
	if rec.NextHearing != nil {
		t.Errorf("next_hearing: whitespace-only text must be absent, got %q", *rec.NextHearing)
	}
}

func TestExtract_PrimaryWinsOverFallback(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<table><tr><td>Petitioner</td><td>From table</td></tr></table>
		<span class="petitioner">From class</span>`)
	rec := Default().Extract(doc)

	if got := model.StringOrEmpty(rec.Petitioner); got != "From table" {
		t.Fatalf("got %q, want primary match", got)
	}
}

func TestExtract_EmptyPrimaryMatchFallsThrough(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<table><tr><td>Respondent</td><td> </td></tr></table>
		<span id="respondent">Fallback value</span>`)
	rec := Default().Extract(doc)

	if got := model.StringOrEmpty(rec.Respondent); got != "Fallback value" {
		t.Fatalf("got %q", got)
	}
}

func TestExtract_SkipsScriptText(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<table><tr><td>Petitioner</td><td><script>var x = 1;</script>Real Name<style>td{}</style></td></tr></table>`)
	rec := Default().Extract(doc)

	if got := model.StringOrEmpty(rec.Petitioner); got != "Real Name" {
		t.Fatalf("got %q", got)
	}
}

// ─── Orders ───

func TestExtract_OrderLinks(t *testing.T) {
	t.Parallel()

	rec := Default().Extract(mustParse(t, statusPage))

	want := []model.OrderLink{
		{Name: "Order dated 01/03/2023", URL: "/orders/1.pdf"},
		{Name: "Order dated 04/05/2023", URL: "https://cdn.example.test/orders/2.PDF"},
		{Name: "/orders/3.pdf", URL: "/orders/3.pdf"},
		{Name: "Judgment", URL: "/orders/4.pdf"},
	}
	if len(rec.Orders) != len(want) {
		t.Fatalf("got %d orders %+v, want %d", len(rec.Orders), rec.Orders, len(want))
	}
	for i := range want {
		if rec.Orders[i] != want[i] {
			t.Errorf("order %d: got %+v, want %+v", i, rec.Orders[i], want[i])
		}
	}
}

func TestExtract_OrdersFallback(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div class="orders">
		<a href="/view?id=7">Order 7</a>
		<a href="">empty</a>
		<a href="/view?id=8">Order 8</a>
	</div>`)
	rec := Default().Extract(doc)

	if len(rec.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %+v", rec.Orders)
	}
	if rec.Orders[0].URL != "/view?id=7" || rec.Orders[1].URL != "/view?id=8" {
		t.Fatalf("unexpected orders %+v", rec.Orders)
	}
}

func TestExtract_HrefsAreNotResolved(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<base href="https://court.example.test/"><a href="files/a.pdf">A</a>`)
	rec := Default().Extract(doc)

	if len(rec.Orders) != 1 || rec.Orders[0].URL != "files/a.pdf" {
		t.Fatalf("expected href verbatim, got %+v", rec.Orders)
	}
}

// ─── Properties ───

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, statusPage)
	ex := Default()

	first, _ := json.Marshal(ex.Extract(doc))
	second, _ := json.Marshal(ex.Extract(doc))
	if string(first) != string(second) {
		t.Fatalf("extraction not deterministic:\n%s\n%s", first, second)
	}
}

func TestExtract_NilDocument(t *testing.T) {
	t.Parallel()

	rec := Default().Extract(nil)
	if rec == nil || rec.Orders == nil || rec.Present() {
		t.Fatalf("expected empty record, got %+v", rec)
	}
}

func TestExtract_InvalidSelectorMatchesNothing(t *testing.T) {
	t.Parallel()

	ex := New(Rules{
		Fields: []FieldRule{{Field: FieldPetitioner, Primary: "td[[[", Fallback: ".petitioner"}},
		Orders: LinkRule{Primary: "a[href"},
	})
	rec := ex.Extract(mustParse(t, `<span class="petitioner">P</span><a href="/x.pdf">x</a>`))

	if model.StringOrEmpty(rec.Petitioner) != "P" {
		t.Fatalf("expected fallback after invalid primary, got %+v", rec.Petitioner)
	}
	if len(rec.Orders) != 0 {
		t.Fatalf("expected no orders, got %+v", rec.Orders)
	}
}

// ─── Parsing ───

func TestExtractHTML_DecodesDeclaredCharset(t *testing.T) {
	t.Parallel()

	body := []byte("<table><tr><td>Petitioner</td><td>Caf\xe9 Owners</td></tr></table>")
	rec, err := Default().ExtractHTML(body, "text/html; charset=windows-1252")
	if err != nil {
		t.Fatalf("ExtractHTML: %v", err)
	}
	if got := model.StringOrEmpty(rec.Petitioner); got != "Café Owners" {
		t.Fatalf("got %q", got)
	}
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                 "",
		"   ":              "",
		"a":                "a",
		"  a \n\t b  ":     "a b",
		"x  y":             "x y",
		"line1\r\nline2  ": "line1 line2",
	}
	for in, want := range cases {
		if got := collapse(in); got != want {
			t.Errorf("collapse(%q) = %q, want %q", in, got, want)
		}
	}
	if strings.Contains(collapse("a  b"), "  ") {
		t.Error("double space survived")
	}
}
