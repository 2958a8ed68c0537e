package profile

var nonVegetarianTerms = []string{
	"chicken", "beef", "pork", "fish", "lamb", "mutton", "turkey", "duck", "meat",
	"bacon", "ham", "sausage", "salmon", "tuna", "cod", "anchovy", "sardine",
	"shrimp", "prawn", "crab", "lobster", "gelatin",
}

var eggTerms = []string{"egg", "mayonnaise", "meringue"}

var dairyTerms = []string{
	"milk", "cheese", "butter", "cream", "yogurt", "ghee", "paneer", "curd", "whey", "casein",
}

var highCarbTerms = []string{
	"sugar", "flour", "bread", "rice", "pasta", "potato", "corn", "oats", "noodle",
	"wheat", "honey", "jaggery", "maple syrup", "banana", "cereal",
}

// allergenCategories 過敏原分類與其代表食材
var allergenCategories = []struct {
	name  string
	terms []string
}{
	{"peanut", []string{"peanut", "groundnut"}},
	{"tree nut", []string{"almond", "walnut", "cashew", "pecan", "pistachio", "hazelnut", "macadamia", "brazil nut"}},
	{"shellfish", []string{"shrimp", "prawn", "crab", "lobster", "clam", "mussel", "oyster", "scallop"}},
	{"dairy", []string{"milk", "cheese", "butter", "cream", "yogurt", "ghee", "paneer", "whey", "curd"}},
	{"egg", []string{"egg", "mayonnaise", "meringue"}},
	{"gluten", []string{"wheat", "flour", "bread", "pasta", "barley", "rye", "semolina", "couscous"}},
	{"soy", []string{"soy", "tofu", "tempeh", "edamame", "miso"}},
	{"fish", []string{"fish", "salmon", "tuna", "cod", "anchovy", "sardine", "tilapia"}},
	{"sesame", []string{"sesame", "tahini"}},
	{"mustard", []string{"mustard"}},
	{"celery", []string{"celery", "celeriac"}},
}

var highCalorieTerms = []string{
	"butter", "oil", "ghee", "cream", "sugar", "cheese", "bacon", "lard", "chocolate",
	"mayonnaise", "peanut butter", "nuts", "fried", "syrup",
}

var proteinTerms = []string{
	"chicken", "beef", "pork", "turkey", "lamb", "fish", "salmon", "tuna", "shrimp",
	"egg", "tofu", "tempeh", "lentil", "chickpea", "bean", "dal", "paneer", "yogurt",
	"cheese", "milk", "quinoa", "whey", "protein", "edamame",
}
