package links

// Aggregator is one entry of the domain table. Domain is matched as a
// case-insensitive substring of the full URL.
type Aggregator struct {
	Domain string
	Name   string
}

// DefaultAggregators lists job boards, ATS platforms and regional boards.
// Order matters: the first matching domain wins.
var DefaultAggregators = []Aggregator{
	// boards
	{"linkedin.com", "LinkedIn"},
	{"indeed.com", "Indeed"},
	{"glassdoor.com", "Glassdoor"},
	{"ziprecruiter.com", "ZipRecruiter"},
	{"simplify.jobs", "Simplify"},
	{"jobright.ai", "Jobright"},
	{"joinhandshake.com", "Handshake"},
	{"wellfound.com", "Wellfound"},
	{"angel.co", "Wellfound"},
	{"builtin.com", "Built In"},
	{"levels.fyi", "Levels.fyi"},
	{"workatastartup.com", "Y Combinator"},
	{"ycombinator.com", "Y Combinator"},
	{"welcometothejungle.com", "Welcome to the Jungle"},
	{"otta.com", "Welcome to the Jungle"},
	{"monster.com", "Monster"},
	{"careerbuilder.com", "CareerBuilder"},
	{"simplyhired.com", "SimplyHired"},
	{"dice.com", "Dice"},
	{"ripplematch.com", "RippleMatch"},
	{"wayup.com", "WayUp"},

	// ATS
	{"lever.co", "Lever"},
	{"greenhouse.io", "Greenhouse"},
	{"myworkdayjobs.com", "Workday"},
	{"myworkdaysite.com", "Workday"},
	{"smartrecruiters.com", "SmartRecruiters"},
	{"ashbyhq.com", "Ashby"},
	{"icims.com", "iCIMS"},
	{"jobvite.com", "Jobvite"},
	{"applytojob.com", "JazzHR"},
	{"bamboohr.com", "BambooHR"},
	{"workable.com", "Workable"},
	{"breezy.hr", "Breezy HR"},
	{"recruitee.com", "Recruitee"},
	{"teamtailor.com", "Teamtailor"},
	{"successfactors.com", "SAP SuccessFactors"},
	{"taleo.net", "Taleo"},
	{"oraclecloud.com", "Oracle Cloud HCM"},
	{"ultipro.com", "UKG"},
	{"paylocity.com", "Paylocity"},
	{"adp.com", "ADP"},
	{"rippling.com", "Rippling"},
	{"pinpointhq.com", "Pinpoint"},
	{"eightfold.ai", "Eightfold"},
	{"phenompeople.com", "Phenom"},

	// regional
	{"naukri.com", "Naukri"},
	{"seek.com.au", "SEEK"},
	{"stepstone.", "StepStone"},
	{"reed.co.uk", "Reed"},
	{"totaljobs.com", "Totaljobs"},
	{"jobbank.gc.ca", "Job Bank"},
	{"hh.ru", "HeadHunter"},
}

// DefaultHomepagePaths are paths that still count as a company homepage.
var DefaultHomepagePaths = []string{
	"/about", "/about-us", "/aboutus", "/company", "/home", "/index.html", "/en", "/en-us", "/us",
}

// DefaultJobPathSegments mark a URL as a posting or careers page.
var DefaultJobPathSegments = []string{
	"/job/", "/jobs/", "/career/", "/careers/", "/apply/", "/req/", "/position/", "/positions/",
	"/opening/", "/openings/", "/posting/", "/postings/", "/vacancy/", "/vacancies/", "/role/", "/roles/",
	"/details/", "/requisition/", "/join-us/", "/work-with-us/",
}

// DefaultJobQueryParams mark a URL as a posting through its query string.
var DefaultJobQueryParams = []string{
	"job=", "jobid=", "job_id=", "jid=", "gh_jid=", "posting_id=", "postingid=", "req=", "reqid=",
	"requisition", "position_id=", "vacancy=", "opening=",
}
