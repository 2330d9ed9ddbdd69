package llm

// systemPrompt pins the extraction role and the output contract.
const systemPrompt = `You are a loan operations analyst extracting structured terms from loan agreement documents. You respond with a single JSON object and nothing else.`

// extractPrompt asks for the LoanRecord schema. Keys mirror the JSON field
// names of model.LoanRecord so the response can be decoded directly.
const extractPrompt = `Extract the following fields from this loan agreement text. Omit any field you cannot find; never guess.

{
  "borrowerName": "<legal name of the borrower>",
  "facilityAmount": <principal amount as a plain number, no separators>,
  "currency": "<ISO-4217 code, e.g. USD>",
  "interestRateMargin": <margin over the reference rate, in percent>,
  "leverageCovenant": <maximum leverage ratio as a plain number>,
  "esgTarget": "<verbatim sustainability commitment, if any>"
}

Document:
%s

Return only the JSON object.`
