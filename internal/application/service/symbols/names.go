package symbols

// taiwanNames is the curated mapping from Taiwan-market symbols to
// display names. Loaded once at process start, never mutated.
var taiwanNames = map[string]string{
	"2330.TW":  "台積電",
	"2317.TW":  "鴻海",
	"2454.TW":  "聯發科",
	"2308.TW":  "台達電",
	"2382.TW":  "廣達",
	"2881.TW":  "富邦金",
	"2882.TW":  "國泰金",
	"2303.TW":  "聯電",
	"2412.TW":  "中華電",
	"1301.TW":  "台塑",
	"2603.TW":  "長榮",
	"2002.TW":  "中鋼",
	"2357.TW":  "華碩",
	"3711.TW":  "日月光",
	"2408.TW":  "南亞科",
	"2886.TW":  "兆豐金",
	"2891.TW":  "中信金",
	"2884.TW":  "玉山金",
	"2609.TW":  "陽明",
	"2615.TW":  "萬海",
	"0050.TW":  "元大台灣50",
	"0056.TW":  "元大高股息",
	"00878.TW": "國泰永續高股息",
	"00919.TW": "群益台灣精選高息",
	"00929.TW": "復華台灣科技優息",
	"00940.TW": "元大台灣價值高息",
}

// usScan is the fixed US-market scan list for the leaderboard.
var usScan = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"TSLA", "META", "TSM", "AVGO", "COST",
}
