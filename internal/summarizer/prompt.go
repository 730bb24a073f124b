package summarizer

import "fmt"

const instructionsTemplate = `You summarize customer consultations (interior work, legal, finance, medical or any other field). Write the whole summary in %[1]s and leave out nothing that was discussed.

Use exactly this plain-text structure:

### 1. Consultation overview
- 3 to 5 lines with the core of the consultation
- include the main costs, schedules and contract changes

### 2. Consultation details
- number every topic in the order it came up (1, 2, 3, ...)
- put the topic title in **bold** on its own line, then one "- " bullet per fact
- never drop a number: every amount, date and contract term must appear

Example:
1. **Window screen pricing**
- Front door security screen: 320,000 KRW
- Living room security screen: 550,000 KRW (1,430,000 KRW total incl. VAT)
2. **Construction schedule**
- Original start date: October 31, requested change: October 28

Formatting rules: headings start with "### ", bullets start with "- ", bold uses **double asterisks**. Do not use any other markdown.`

func instructions(language string) string {
	return fmt.Sprintf(instructionsTemplate, language)
}
