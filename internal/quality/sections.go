package quality

import (
	"fmt"
	"strings"
)

// Section structure targets.
const (
	minSectionCount     = 2
	maxSectionCount     = 9
	maxSectionTitleLen  = 100
	minSectionsWithList = 2
	maxSectionsWithList = 4
)

// SectionStructureCheck verifies the section skeleton: enough sections,
// every section titled and filled, and a reasonable spread of lists.
// Too few sections or an empty section is an error; the rest advisory.
type SectionStructureCheck struct{}

// Name returns the check identifier.
func (c *SectionStructureCheck) Name() string { return "section_structure" }

// Check records section structure findings.
func (c *SectionStructureCheck) Check(d *CheckData) {
	sections := d.Article.Sections

	if len(sections) < minSectionCount {
		d.Result.AddError(c.Name(), fmt.Sprintf(
			"Too few sections (%d, minimum %d)", len(sections), minSectionCount))
	} else if len(sections) > maxSectionCount {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too many sections (%d, maximum %d)", len(sections), maxSectionCount))
	}

	for i, section := range sections {
		if section.Title == "" {
			d.Result.AddError(c.Name(), fmt.Sprintf("Section %d has no title", i+1))
		} else if titleLen := len([]rune(section.Title)); titleLen > maxSectionTitleLen {
			d.Result.AddWarning(c.Name(), fmt.Sprintf(
				"Section %d title too long (%d chars)", i+1, titleLen))
		}

		if section.Content == "" {
			d.Result.AddError(c.Name(), fmt.Sprintf(
				"Section %d ('%s') has no content", i+1, section.Title))
		}
	}

	listCount := 0
	for _, section := range sections {
		if strings.Contains(section.Content, "<ul>") || strings.Contains(section.Content, "<ol>") {
			listCount++
		}
	}
	if listCount < minSectionsWithList {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too few sections with lists (%d, recommended %d-%d)",
			listCount, minSectionsWithList, maxSectionsWithList))
	} else if listCount > maxSectionsWithList {
		d.Result.AddWarning(c.Name(), fmt.Sprintf(
			"Too many sections with lists (%d, recommended %d-%d)",
			listCount, minSectionsWithList, maxSectionsWithList))
	}
}
