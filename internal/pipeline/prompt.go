package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// outputContract is the JSON skeleton the model must fill. Nine section
// slots, three takeaway slots, four PAA slots, six FAQ slots; unused
// slots stay blank. The parser reads exactly these keys.
const outputContract = `{
  "Headline": "Concise, eye-catching headline that states the main topic and includes the primary keyword",
  "Subtitle": "Optional sub-headline that adds context or a fresh angle",
  "Teaser": "2-3-sentence hook that highlights a pain point or benefit and invites readers to continue",
  "Intro": "Brief opening paragraph (80-120 words) that frames the problem, shows relevance, and previews the value",
  "Meta Title": "<=55-character SEO title with the primary keyword and (optionally) brand",
  "Meta Description": "<=130-character SEO description summarising the benefit and including a CTA",
  "section_01_title": "Logical Section 01 Heading (H2)",
  "section_01_content": "HTML content for Section 01. Separate the article logically; wrap each paragraph in <p>. Leave unused sections blank.",
  "section_02_title": "Logical Section 02 Heading",
  "section_02_content": "",
  "section_03_title": "",
  "section_03_content": "",
  "section_04_title": "",
  "section_04_content": "",
  "section_05_title": "",
  "section_05_content": "",
  "section_06_title": "",
  "section_06_content": "",
  "section_07_title": "",
  "section_07_content": "",
  "section_08_title": "",
  "section_08_content": "",
  "section_09_title": "",
  "section_09_content": "",

  "key_takeaway_01": "Key point or insight #1 (1 sentence). Leave unused takeaways blank.",
  "key_takeaway_02": "",
  "key_takeaway_03": "",

  "paa_01_question": "People also ask question #1",
  "paa_01_answer": "Concise answer to question #1.",
  "paa_02_question": "",
  "paa_02_answer": "",
  "paa_03_question": "",
  "paa_03_answer": "",
  "paa_04_question": "",
  "paa_04_answer": "",

  "faq_01_question": "Main FAQ question #1",
  "faq_01_answer": "Clear, concise answer.",
  "faq_02_question": "",
  "faq_02_answer": "",
  "faq_03_question": "",
  "faq_03_answer": "",
  "faq_04_question": "",
  "faq_04_answer": "",
  "faq_05_question": "",
  "faq_05_answer": "",
  "faq_06_question": "",
  "faq_06_answer": "",

  "Sources": "[1]: https://... - 8-15-word note. List one source per line; leave blank until populated. LIMIT TO 20 sources",
  "Search Queries": "Q1: keyword ...  List one query per line; leave blank until populated."
}`

// BuildPrompt assembles the generation prompt for a brief. The rules
// encode the same editorial contract the quality checks enforce, so a
// model that follows the prompt passes the gate without repairs.
func BuildPrompt(brief *model.Brief) string {
	internalLinks := strings.Join(brief.Links, ", ")

	competitors, _ := json.Marshal(brief.Competitors)
	companyInfo, _ := json.Marshal(brief.CompanyInfo)

	var sb strings.Builder

	fmt.Fprintf(&sb, `*** INPUT ***
Primary Keyword: %s;
Content Generation Instructions: %s;
Company Info: %s;
Output Language: %s;
Target Country: %s;
Company URL: %s;
Competitors: %s;
Internal Links: %s;

`, brief.PrimaryKeyword, brief.Instruction, companyInfo, brief.Language,
		brief.Location, brief.CompanyURL, competitors, internalLinks)

	fmt.Fprintf(&sb, `*** TASK ***
You are writing a long-form blog post in %s's voice, fully optimised for LLM discovery, on the topic defined by **Primary Keyword**.

`, brief.CompanyName)

	sb.WriteString(`*** CONTENT RULES ***
1. Word count flexible (~1200-1800) - keep storyline tight, info-dense.
2. One-sentence hook, then two-sentence summary.
3. Create a <h2> "Key Takeaways" part into the dedicated variables.
4. New H2/H3 every 150-200 words; headings packed with natural keywords.
5. Every paragraph <= 25 words & >= 90% active voice, and **must contain** a number, KPI or real example.
6. **Primary Keyword** must appear **naturally** (variations/inflections allowed for grammar and readability; no keyword stuffing).
7. **NEVER** embed PAA, FAQ or Key Takeaways inside sections or section titles, intro or teaser; they live in separate JSON keys.
8. **Internal links**: at least one per H2 block, woven seamlessly into the surrounding sentence.
   Example: <a href="/target-slug">Descriptive Anchor</a> (<= 6 words, varied). ENSURE correct html format.
9. Citations in-text as [1], [2]... matching the **Sources** list. MAX 20 sources. STRICT citation format in text [1],[2],[4][9].
10. Highlight 1-2 insights per section with <strong>...</strong> (never **...**).
11. Follow instructions from **Content Generation Instructions**.
12. Rename each title to a consultancy-style action title (concise, data/benefit-driven; **no HTML in titles**).
13. In **2-4 sections**, insert either an HTML bulleted (<ul>) or numbered (<ol>) list **introduced by one short lead-in sentence**; 4-8 items per list.
14. Avoid repetition: vary examples, phrasing and data across sections.
15. **Narrative flow**: end every section with one bridging sentence that naturally sets up the next section.

`)

	fmt.Fprintf(&sb, `*** SOURCES ***
- Minimum 8 authoritative references for %s.
- One line each: [1]: https://... - 8-15-word note (canonical URLs only).

*** SEARCH QUERIES ***
- One line each: Q1: keyword phrase ...

`, brief.Location)

	fmt.Fprintf(&sb, `*** HARD RULES ***
- Keep all HTML tags intact (<p>, <ul>, <ol>, <h2>, <h3> ...).
- No extra keys, comments or process explanations.
- **Meta Description CTA** must be clear, actionable and grounded in company info; no vague buzzwords.
- Always follow the Content Generation Instructions, even if other sources differ.
- JSON must be valid and minified (no line breaks inside values).
- Maximum 3 citations per section (if more facts, cite at end of paragraph).
- IMPORTANT: Whole textual Output language = %s.
- NEVER build sections as one <p> per sentence; group related sentences into flowing paragraphs.
- **NEVER** embed PAA, FAQ or Key Takeaways inside section_XX_content or section_XX_title, intro or teaser; they live in separate JSON keys.
- **NEVER** mention or link to competing companies (Competitors) in the article.

*** OUTPUT ***
Please separate the generated content into the output fields and ensure all required output fields are generated.

ENSURE correct JSON output format
Output format:

`, brief.Language)

	sb.WriteString("```json\n")
	sb.WriteString(outputContract)
	sb.WriteString("\n```\n\nALWAYS AT ANY TIMES STRICTLY OUTPUT IN THE JSON FORMAT. No extra keys or commentary.")

	return sb.String()
}
