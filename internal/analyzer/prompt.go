package analyzer

// BuildAnalysisPrompt returns the fixed prompt for full structured document
// analysis. The model must answer with a single JSON object matching the
// AnalysisResult schema; anything else is handled by the degraded parse path.
func BuildAnalysisPrompt() string {
	return `You are an expert document analysis system. Your task is to analyze the provided document and extract comprehensive insights.

Provide a detailed analysis in the following JSON format:
{
    "document_type": "invoice|contract|resume|report|letter|other",
    "summary": "A concise 2-3 sentence summary of the document's main purpose and content",
    "entities": [
        {
            "type": "person|organization|date|amount|location|email|phone|url|other",
            "value": "extracted value",
            "confidence": 0.95,
            "context": "brief context about where this entity was found"
        }
    ],
    "key_points": [
        "Important point 1",
        "Important point 2"
    ],
    "risk_factors": [
        "Any potential risks or concerns identified"
    ],
    "recommendations": [
        "Actionable recommendations based on the analysis"
    ],
    "sentiment": "positive|neutral|negative",
    "urgency": "high|medium|low",
    "completeness": "complete|partial|incomplete"
}

Guidelines:
1. Be precise and accurate in entity extraction
2. Identify document type based on content and structure
3. Extract all relevant entities (names, dates, amounts, organizations, etc.)
4. Provide actionable insights and recommendations
5. Assess document completeness and quality
6. Identify any potential risks or issues

For invoices: Focus on amounts, dates, vendor info, line items
For contracts: Focus on parties, terms, dates, obligations, penalties
For resumes: Focus on skills, experience, education, contact info
For reports: Focus on findings, conclusions, recommendations

Return ONLY valid JSON without any additional text, markdown formatting, or explanations.`
}

// BuildQAPrompt returns the question-answering prompt with the literal
// question embedded. Answers are plain text, never JSON.
func BuildQAPrompt(question string) string {
	return `You are an expert document analysis assistant.
Based on the provided document content, answer the following question accurately and concisely.

Question: ` + question + `

Instructions:
1. Answer based only on the information present in the document
2. If the information is not available, clearly state that
3. Provide specific quotes or references when possible
4. Be concise but thorough
5. If the question is ambiguous, ask for clarification
6. Provide your answer in clear, readable text format (not JSON)

Provide a clear, direct answer to the question in natural language.`
}
