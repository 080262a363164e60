package coordinate

var fallbackSet = Set{
	{
		Title:       "上品きれいめコーデ",
		Description: "きちんと感を軸に、温度調整もしやすい組み合わせ。",
		Points:      []string{"コートはベージュ系で品よく", "ニットは薄手でレイヤード", "足元はきれいめスニーカー"},
	},
	{
		Title:       "程よく華やぐコーデ",
		Description: "シンプルをベースに、小物で“きれいめ”のムードを足す。",
		Points:      []string{"トレンチやジャケットで締める", "ボトムはストレートで大人っぽく", "バッグはレザー調で格上げ"},
	},
	{
		Title:       "こなれモードコーデ",
		Description: "色数を絞って、シルエットと素材感で差をつける。",
		Points:      []string{"モノトーンで統一", "ロング丈で縦ライン", "アクセはミニマルに"},
	},
}

// Fallback returns the static suggestion set served whenever generation
// fails. Each call returns an independent copy.
func Fallback() Set {
	var out Set
	for i, s := range fallbackSet {
		out[i] = Suggestion{
			Title:       s.Title,
			Description: s.Description,
			Points:      append([]string(nil), s.Points...),
		}
	}
	return out
}
