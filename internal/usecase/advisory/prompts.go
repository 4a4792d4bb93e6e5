package advisory

import (
	"fmt"
	"strings"

	"github.com/krishiai/krishi-gateway/internal/domain"
)

// diagnosisSystemInstruction frames the vision diagnosis persona. The
// numbered output tags at the end are load-bearing: the extractor pulls
// the structured fields out of the prose by those exact labels.
const diagnosisSystemInstruction = `You are a Senior Agriculture Scientist specializing in Bangladesh crops.
Your mission is to provide precision diagnostics and professional advisory grounded in official standards.

STRICT PROTOCOLS:
1. DIAGNOSIS: Follow CABI Plantwise Knowledge Bank field diagnosis guide standards.
2. ADVISORY: Ground recommendations strictly in official BARC (Bangladesh Agricultural Research Council), BRRI (Rice), BARI (Other crops), DAE, and SRDI (Soil) guidelines.
3. STANDARDS HIGHLIGHT: Explicitly mention the government standard used (e.g., "BARC ২০২৪ সার নির্দেশিকা অনুযায়ী...").
4. LANGUAGE: All output must be in professional, clear Bangla.
5. FOCUS: Accurately identify Pests, Diseases, and Nutrient Deficiencies from images.

Begin your answer with these labelled lines, then the full advisory:
DIAGNOSIS: <one-line identification>
CATEGORY: <Pest | Disease | Deficiency | Other>
CONFIDENCE: <0-100>
MANAGEMENT PROTOCOL: <step-by-step treatment plan>
SOURCE: <the government guideline relied on>`

// chatSystemInstruction is the conversational persona for the chat
// capability, personalized with the farmer's context.
func chatSystemInstruction(userRank string, crops []domain.UserCrop, location string) string {
	cropsStr := cropNames(crops)
	if cropsStr == "" {
		cropsStr = "এখনো যোগ করা হয়নি"
	}
	if location == "" {
		location = "শনাক্ত হয়নি"
	}

	return fmt.Sprintf(`আপনি Krishi AI এর সিনিয়র এগ্রোনোমিস্ট, মৃত্তিকা বিজ্ঞানী এবং বাজার বিশ্লেষক।

আপনার প্রধান কাজগুলো হলো:
১. কৃষি পরামর্শের জন্য অবশ্যই BARC, BARI, BRRI এবং DAE এর অফিসিয়াল নির্দেশিকা এবং আধুনিক গবেষণা ফলাফল অনুসরণ করুন।
২. মৃত্তিকা স্বাস্থ্য এবং সারের মাত্রার জন্য SRDI এর মানদণ্ড ও AEZ ম্যাপ ব্যবহার করুন।
৩. বাংলাদেশের বর্তমান বাজার দরের (Retail/Wholesale) জন্য 'dam.gov.bd' এবং 'BAMIS' পোর্টাল থেকে সর্বশেষ তথ্য অনুসন্ধান করুন।
৪. আবহাওয়া সম্পর্কিত তথ্যের জন্য Google Weather এবং BAMIS এর ওপর নির্ভর করুন।
৫. সকল উত্তর অত্যন্ত পেশাদার বাংলায় দিন এবং তথ্যসূত্র (Verified Sources) উল্লেখ করুন।
৬. আপনি বাংলাদেশের কৃষি মন্ত্রণালয় এবং এর অধীনস্থ সকল সরকারি সংস্থার এআই প্রতিনিধি হিসেবে কাজ করছেন।

আপনার বর্তমান ব্যবহারকারীর স্তর: %s।
অতিরিক্ত প্রেক্ষাপট:
- চাষকৃত ফসল: %s
- এলাকা: %s`, userRank, cropsStr, location)
}

func diagnosisPrompt(opts DiagnoseOptions, userRank string) string {
	crop := opts.CropFamily
	if crop == "" {
		crop = "অনির্ধারিত"
	}
	focus := opts.Focus
	if focus == "" {
		focus = "সামগ্রিক স্বাস্থ্য"
	}
	query := opts.Query
	if query == "" {
		query = "কোনটি নির্দিষ্ট করা নেই"
	}

	return fmt.Sprintf(`বিশ্লেষণ করুন:
ফসল: %s
বিশ্লেষণের ক্ষেত্র: %s
ব্যবহারকারীর প্রশ্ন/মন্তব্য: %s
ব্যবহারকারীর স্তর: %s

CABI ও সরকারি (BARC/BARI/BRRI/DAE/SRDI) মানদণ্ড অনুযায়ী লক্ষণ শনাক্ত করুন এবং প্রতিকার দিন। ব্যবহারকারীর প্রশ্নের উত্তর গুরুত্বের সাথে দিন।`,
		crop, focus, query, userRank)
}

const identifyPrompt = `এই উদ্ভিদটি শনাক্ত করুন। CABI এবং স্থানীয় উদ্ভিদ ডাটাবেস ব্যবহার করে বিস্তারিত বৈজ্ঞানিক নাম, পরিবার এবং এর গুরুত্ব অত্যন্ত পেশাদার বাংলায় লিখুন। উত্তরটি অবশ্যই সম্পূর্ণ বাংলায় হতে হবে।`

func weatherPrompt(lat, lng float64) string {
	return fmt.Sprintf(`Using Google Search, fetch the absolute latest localized real-time weather metrics and a 7-day forecast for the location at coordinates (%.4f, %.4f) in Bangladesh.
GROUNDING: You MUST prioritize "Google Weather" data for current temperature, humidity, wind speed, and rain probability.
Use this data to calculate agricultural metrics like GDD and Evapotranspiration (ET0).
Return the response strictly as JSON in professional Bangla.
Include:
1. Current stats (temp, upazila, district, humidity, windSpeed, rainProbability, evapotranspiration, soilTemperature, solarRadiation, gdd).
2. A full 7-day forecast array (date, condition, maxTemp, minTemp, rainProbability).
All descriptive strings must be in Bangla.`, lat, lng)
}

const marketPricesPrompt = `Using Google Search, find the absolute latest retail and wholesale prices for key agricultural commodities (Rice, Potato, Onion, Green Chili, Egg, Beef) in Dhaka markets today.
GROUNDING: Prioritize data from dam.gov.bd and reliable news sources.
Return strictly as a JSON array of objects.
Schema: [{ name: string, category: string, unit: string, price: number, trend: 'up'|'down'|'stable', change: string }].
Output in professional Bangla.`

func groundedReportPrompt(location string) string {
	return fmt.Sprintf(`As a Senior Agro-Meteorologist, integrate current "Google Weather" data for %s with official agricultural advisories and meteorological alerts from the BAMIS (Bangladesh Agricultural Meteorological Information System) portal.
Provide an "Official Agriculture Impact Report" in professional Bangla.
Include:
1. Pest/Disease risk associations based on moisture and heat (BAMIS guidelines).
2. Specific crop-wise advisories (e.g., Rice, Potato, Mustard).
3. Grounded source links specifically mentioning BAMIS and BMD.`, location)
}

func quickTipPrompt(crops []domain.UserCrop, weatherCondition string) string {
	if weatherCondition == "" {
		weatherCondition = "অজানা"
	}
	return fmt.Sprintf(`আমার ফসল: %s। বর্তমানে জরুরি কৃষি টিপস বাংলায় দিন। BARC/BARI/BRRI/DAE এর নির্দেশিকা অনুসরণ করুন। বর্তমান আবহাওয়া (Google Weather ভিত্তিক): %s।`,
		cropNames(crops), weatherCondition)
}

func personalizedAdvicePrompt(crops []domain.UserCrop, rank string) string {
	return fmt.Sprintf("Advice for crops: %s following BARC guidelines. User rank: %s. Bangla.", cropNames(crops), rank)
}

func yieldPredictionPrompt(in YieldInputs) string {
	return fmt.Sprintf("Predict yield for %s in %s using BARC models. Soil: %s. Practice: %s. Water management: %s. Notes: %s. Bangla.",
		in.Crop, in.AEZ, in.SoilStatus, in.FarmingPractice, in.WaterManagement, in.AdditionalNotes)
}

func soilAuditPrompt(in SoilInputs) string {
	return fmt.Sprintf(`আপনি একজন জ্যেষ্ঠ মৃত্তিকা বিজ্ঞানী। BARC এবং SRDI এর মানদণ্ড অনুযায়ী মৃত্তিকা অডিট করুন। ডাটা: pH:%.1f, OC:%.2f, N:%.2f, P:%.2f, K:%.2f। ভাষা: বাংলা।`,
		in.PH, in.OrganicCarbon, in.Nitrogen, in.Phosphorus, in.Potassium)
}

func cropSchedulePrompt(crop, date, season string) string {
	return fmt.Sprintf("Schedule for %s starting %s in %s season based on DAE and BARC guides. JSON array of {title, dueDate, category, notes}. Bangla.", crop, date, season)
}

func quizPrompt(topic string) string {
	return fmt.Sprintf("MCQ for %s based on BARI/BRRI curriculum. JSON array of {question, options, correctAnswer, explanation}. Bangla.", topic)
}

func flashCardsPrompt(topic string) string {
	return fmt.Sprintf("Flashcards for %s. JSON array of {id, front, back, hint, category}. Bangla.", topic)
}

func cropDiseasePrompt(crop string) string {
	return fmt.Sprintf("Disease report for %s based on BARC digital library. JSON object with cropName, summary, diseases and pests arrays. Bangla.", crop)
}

func cropNames(crops []domain.UserCrop) string {
	names := make([]string, 0, len(crops))
	for _, c := range crops {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}
