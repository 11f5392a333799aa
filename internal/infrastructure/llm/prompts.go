package llm

const systemPrompt = "You analyze commodity-market signals for business impact. " +
	"Always answer with a single JSON object."

// userPromptTemplate takes the serialized corpus and the taxonomy list. The
// answer must stay inside the supplied category list; anything else is
// dropped during validation.
const userPromptTemplate = `Your goal is to identify which categories from the provided list are likely to be impacted by the market events described in the data. Think broadly: include not only manufacturers of affected commodities but also businesses that rely on these commodities as key inputs (for example, bakeries that purchase flour, sugar, and butter, or restaurants and accommodation providers impacted by meat prices, as well as grocery businesses).

Instructions:

Data Analysis:
Carefully review the provided scraped data for trends, significant events, and commodity market fluctuations. Identify specific commodities mentioned and analyze their potential impact on market dynamics.

Category Filtering:
Using the provided list of business categories (each with its NAIC code), identify only those categories that are likely to be impacted by the commodity market changes mentioned in the news and posts. Determine which specific commodities (if any) relate to each category's potential exposure.
Consider both:
Direct Impact: categories that manufacture or directly deal with the affected commodities.
Indirect Impact: categories that rely on affected commodities as essential inputs for their operations.

Impact Assessment:
For each identified category, assess the potential impact of the commodity market fluctuations.

Output Structure, return your answer in json format:

"Summary of Key Findings": a brief overview of the major insights drawn from the scraped data.
"List of Affected Business Categories": for each affected category from the provided list, an object with:
"Business Category Name"
"NAIC Code"
"Affected Commodities": specific commodities from the data that are relevant.
"Potential Impact": explanation of how the commodity market changes could affect the category.

Focus solely on the provided category list and their corresponding NAIC codes.

Scraped Data: %s
Categories List with their NAIC code: %s`
