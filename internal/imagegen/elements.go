package imagegen

// Element is one periodic-table entry used for badge generation.
type Element struct {
	AtomicNumber int
	Symbol       string
	NameJA       string
	NameEN       string
	Group        string
}

// Elements lists all 118 elements with Japanese group labels.
// Data: Wikidata (CC0), IUPAC Periodic Table of Elements.
var Elements = []Element{
	{1, "H", "水素", "Hydrogen", "非金属"},
	{2, "He", "ヘリウム", "Helium", "貴ガス"},
	{3, "Li", "リチウム", "Lithium", "アルカリ金属"},
	{4, "Be", "ベリリウム", "Beryllium", "アルカリ土類金属"},
	{5, "B", "ホウ素", "Boron", "半金属"},
	{6, "C", "炭素", "Carbon", "非金属"},
	{7, "N", "窒素", "Nitrogen", "非金属"},
	{8, "O", "酸素", "Oxygen", "非金属"},
	{9, "F", "フッ素", "Fluorine", "ハロゲン"},
	{10, "Ne", "ネオン", "Neon", "貴ガス"},
	{11, "Na", "ナトリウム", "Sodium", "アルカリ金属"},
	{12, "Mg", "マグネシウム", "Magnesium", "アルカリ土類金属"},
	{13, "Al", "アルミニウム", "Aluminum", "金属"},
	{14, "Si", "ケイ素", "Silicon", "半金属"},
	{15, "P", "リン", "Phosphorus", "非金属"},
	{16, "S", "硫黄", "Sulfur", "非金属"},
	{17, "Cl", "塩素", "Chlorine", "ハロゲン"},
	{18, "Ar", "アルゴン", "Argon", "貴ガス"},
	{19, "K", "カリウム", "Potassium", "アルカリ金属"},
	{20, "Ca", "カルシウム", "Calcium", "アルカリ土類金属"},
	{21, "Sc", "スカンジウム", "Scandium", "遷移金属"},
	{22, "Ti", "チタン", "Titanium", "遷移金属"},
	{23, "V", "バナジウム", "Vanadium", "遷移金属"},
	{24, "Cr", "クロム", "Chromium", "遷移金属"},
	{25, "Mn", "マンガン", "Manganese", "遷移金属"},
	{26, "Fe", "鉄", "Iron", "遷移金属"},
	{27, "Co", "コバルト", "Cobalt", "遷移金属"},
	{28, "Ni", "ニッケル", "Nickel", "遷移金属"},
	{29, "Cu", "銅", "Copper", "遷移金属"},
	{30, "Zn", "亜鉛", "Zinc", "遷移金属"},
	{31, "Ga", "ガリウム", "Gallium", "金属"},
	{32, "Ge", "ゲルマニウム", "Germanium", "半金属"},
	{33, "As", "ヒ素", "Arsenic", "半金属"},
	{34, "Se", "セレン", "Selenium", "非金属"},
	{35, "Br", "臭素", "Bromine", "ハロゲン"},
	{36, "Kr", "クリプトン", "Krypton", "貴ガス"},
	{37, "Rb", "ルビジウム", "Rubidium", "アルカリ金属"},
	{38, "Sr", "ストロンチウム", "Strontium", "アルカリ土類金属"},
	{39, "Y", "イットリウム", "Yttrium", "遷移金属"},
	{40, "Zr", "ジルコニウム", "Zirconium", "遷移金属"},
	{41, "Nb", "ニオブ", "Niobium", "遷移金属"},
	{42, "Mo", "モリブデン", "Molybdenum", "遷移金属"},
	{43, "Tc", "テクネチウム", "Technetium", "遷移金属"},
	{44, "Ru", "ルテニウム", "Ruthenium", "遷移金属"},
	{45, "Rh", "ロジウム", "Rhodium", "遷移金属"},
	{46, "Pd", "パラジウム", "Palladium", "遷移金属"},
	{47, "Ag", "銀", "Silver", "遷移金属"},
	{48, "Cd", "カドミウム", "Cadmium", "遷移金属"},
	{49, "In", "インジウム", "Indium", "金属"},
	{50, "Sn", "スズ", "Tin", "金属"},
	{51, "Sb", "アンチモン", "Antimony", "半金属"},
	{52, "Te", "テルル", "Tellurium", "半金属"},
	{53, "I", "ヨウ素", "Iodine", "ハロゲン"},
	{54, "Xe", "キセノン", "Xenon", "貴ガス"},
	{55, "Cs", "セシウム", "Cesium", "アルカリ金属"},
	{56, "Ba", "バリウム", "Barium", "アルカリ土類金属"},
	{57, "La", "ランタン", "Lanthanum", "ランタノイド"},
	{58, "Ce", "セリウム", "Cerium", "ランタノイド"},
	{59, "Pr", "プラセオジム", "Praseodymium", "ランタノイド"},
	{60, "Nd", "ネオジム", "Neodymium", "ランタノイド"},
	{61, "Pm", "プロメチウム", "Promethium", "ランタノイド"},
	{62, "Sm", "サマリウム", "Samarium", "ランタノイド"},
	{63, "Eu", "ユーロピウム", "Europium", "ランタノイド"},
	{64, "Gd", "ガドリニウム", "Gadolinium", "ランタノイド"},
	{65, "Tb", "テルビウム", "Terbium", "ランタノイド"},
	{66, "Dy", "ジスプロシウム", "Dysprosium", "ランタノイド"},
	{67, "Ho", "ホルミウム", "Holmium", "ランタノイド"},
	{68, "Er", "エルビウム", "Erbium", "ランタノイド"},
	{69, "Tm", "ツリウム", "Thulium", "ランタノイド"},
	{70, "Yb", "イッテルビウム", "Ytterbium", "ランタノイド"},
	{71, "Lu", "ルテチウム", "Lutetium", "ランタノイド"},
	{72, "Hf", "ハフニウム", "Hafnium", "遷移金属"},
	{73, "Ta", "タンタル", "Tantalum", "遷移金属"},
	{74, "W", "タングステン", "Tungsten", "遷移金属"},
	{75, "Re", "レニウム", "Rhenium", "遷移金属"},
	{76, "Os", "オスミウム", "Osmium", "遷移金属"},
	{77, "Ir", "イリジウム", "Iridium", "遷移金属"},
	{78, "Pt", "白金", "Platinum", "遷移金属"},
	{79, "Au", "金", "Gold", "遷移金属"},
	{80, "Hg", "水銀", "Mercury", "遷移金属"},
	{81, "Tl", "タリウム", "Thallium", "金属"},
	{82, "Pb", "鉛", "Lead", "金属"},
	{83, "Bi", "ビスマス", "Bismuth", "金属"},
	{84, "Po", "ポロニウム", "Polonium", "半金属"},
	{85, "At", "アスタチン", "Astatine", "ハロゲン"},
	{86, "Rn", "ラドン", "Radon", "貴ガス"},
	{87, "Fr", "フランシウム", "Francium", "アルカリ金属"},
	{88, "Ra", "ラジウム", "Radium", "アルカリ土類金属"},
	{89, "Ac", "アクチニウム", "Actinium", "アクチノイド"},
	{90, "Th", "トリウム", "Thorium", "アクチノイド"},
	{91, "Pa", "プロトアクチニウム", "Protactinium", "アクチノイド"},
	{92, "U", "ウラン", "Uranium", "アクチノイド"},
	{93, "Np", "ネプツニウム", "Neptunium", "アクチノイド"},
	{94, "Pu", "プルトニウム", "Plutonium", "アクチノイド"},
	{95, "Am", "アメリシウム", "Americium", "アクチノイド"},
	{96, "Cm", "キュリウム", "Curium", "アクチノイド"},
	{97, "Bk", "バークリウム", "Berkelium", "アクチノイド"},
	{98, "Cf", "カリホルニウム", "Californium", "アクチノイド"},
	{99, "Es", "アインスタイニウム", "Einsteinium", "アクチノイド"},
	{100, "Fm", "フェルミウム", "Fermium", "アクチノイド"},
	{101, "Md", "メンデレビウム", "Mendelevium", "アクチノイド"},
	{102, "No", "ノーベリウム", "Nobelium", "アクチノイド"},
	{103, "Lr", "ローレンシウム", "Lawrencium", "アクチノイド"},
	{104, "Rf", "ラザホージウム", "Rutherfordium", "遷移金属"},
	{105, "Db", "ドブニウム", "Dubnium", "遷移金属"},
	{106, "Sg", "シーボーギウム", "Seaborgium", "遷移金属"},
	{107, "Bh", "ボーリウム", "Bohrium", "遷移金属"},
	{108, "Hs", "ハッシウム", "Hassium", "遷移金属"},
	{109, "Mt", "マイトネリウム", "Meitnerium", "遷移金属"},
	{110, "Ds", "ダームスタチウム", "Darmstadtium", "遷移金属"},
	{111, "Rg", "レントゲニウム", "Roentgenium", "遷移金属"},
	{112, "Cn", "コペルニシウム", "Copernicium", "遷移金属"},
	{113, "Nh", "ニホニウム", "Nihonium", "金属"},
	{114, "Fl", "フレロビウム", "Flerovium", "金属"},
	{115, "Mc", "モスコビウム", "Moscovium", "金属"},
	{116, "Lv", "リバモリウム", "Livermorium", "金属"},
	{117, "Ts", "テネシン", "Tennessine", "ハロゲン"},
	{118, "Og", "オガネソン", "Oganesson", "貴ガス"},
}
