package scoring

// actionVerbs holds base and past-tense forms of common resume action verbs.
var actionVerbs = map[string]struct{}{
	"accept": {}, "accepted": {}, "accomplish": {}, "accomplished": {}, "account": {},
	"accounted": {}, "accumulate": {}, "accumulated": {}, "achieve": {}, "achieved": {},
	"acknowledge": {}, "acknowledged": {}, "acquire": {}, "acquired": {}, "activate": {},
	"activated": {}, "act": {}, "acted": {}, "adapt": {}, "adapted": {}, "add": {}, "added": {},
	"adhere": {}, "adhered": {}, "adjust": {}, "adjusted": {}, "administer": {}, "administered": {},
	"admit": {}, "admitted": {}, "adopt": {}, "adopted": {}, "advance": {}, "advanced": {},
	"advise": {}, "advised": {}, "advocate": {}, "advocated": {}, "affirm": {}, "affirmed": {},
	"affix": {}, "affixed": {}, "aid": {}, "aided": {}, "align": {}, "aligned": {}, "allocate": {},
	"allocated": {}, "allot": {}, "allotted": {}, "alter": {}, "altered": {}, "amend": {},
	"amended": {}, "analyze": {}, "analyzed": {}, "anticipate": {}, "anticipated": {}, "answer": {},
	"answered": {}, "apply": {}, "applied": {}, "appoint": {}, "appointed": {}, "appraise": {},
	"appraised": {}, "appropriate": {}, "appropriated": {}, "approve": {}, "approved": {},
	"arbitrate": {}, "arbitrated": {}, "arrange": {}, "arranged": {}, "articulate": {},
	"articulated": {}, "ascertain": {}, "ascertained": {}, "assemble": {}, "assembled": {},
	"assert": {}, "asserted": {}, "assess": {}, "assessed": {}, "assign": {}, "assigned": {},
	"assume": {}, "assumed": {}, "assure": {}, "assured": {}, "attach": {}, "attached": {},
	"attain": {}, "attained": {}, "attend": {}, "attended": {}, "audit": {}, "audited": {},
	"authorize": {}, "authorized": {}, "avert": {}, "averted": {}, "award": {}, "awarded": {},
	"balance": {}, "balanced": {}, "batch": {}, "batched": {}, "budget": {}, "budgeted": {},
	"build": {}, "built": {}, "calculate": {}, "calculated": {}, "calibrate": {}, "calibrated": {},
	"call": {}, "called": {}, "cancel": {}, "cancelled": {}, "capitalize": {}, "capitalized": {},
	"carry": {}, "carried": {}, "categorize": {}, "categorized": {}, "certify": {}, "certified": {},
	"chart": {}, "charted": {}, "check": {}, "checked": {}, "circulate": {}, "circulated": {},
	"clarify": {}, "clarified": {}, "classify": {}, "classified": {}, "clean": {}, "cleaned": {},
	"climb": {}, "climbed": {}, "close": {}, "closed": {}, "coach": {}, "coached": {}, "code": {},
	"coded": {}, "collaborate": {}, "collaborated": {}, "collate": {}, "collated": {}, "collect": {},
	"collected": {}, "command": {}, "commanded": {}, "communicate": {}, "communicated": {},
	"compare": {}, "compared": {}, "compile": {}, "compiled": {}, "complete": {}, "completed": {},
	"comply": {}, "complied": {}, "compose": {}, "composed": {}, "comprehend": {}, "comprehended": {},
	"compute": {}, "computed": {}, "conduct": {}, "conducted": {}, "confirm": {}, "confirmed": {},
	"consolidate": {}, "consolidated": {}, "construct": {}, "constructed": {}, "consult": {},
	"consulted": {}, "contribute": {}, "contributed": {}, "control": {}, "controlled": {},
	"convert": {}, "converted": {}, "coordinate": {}, "coordinated": {}, "copy": {}, "copied": {},
	"correct": {}, "corrected": {}, "counsel": {}, "counseled": {}, "create": {}, "created": {},
	"debug": {}, "debugged": {}, "decide": {}, "decided": {}, "delegate": {}, "delegated": {},
	"delete": {}, "deleted": {}, "deliver": {}, "delivered": {}, "demonstrate": {},
	"demonstrated": {}, "design": {}, "designed": {}, "determine": {}, "determined": {},
	"develop": {}, "developed": {}, "devise": {}, "devised": {}, "direct": {}, "directed": {},
	"document": {}, "documented": {}, "draft": {}, "drafted": {}, "edit": {}, "edited": {},
	"effect": {}, "effected": {}, "eliminate": {}, "eliminated": {}, "emphasize": {},
	"emphasized": {}, "employ": {}, "employed": {}, "enable": {}, "enabled": {}, "encourage": {},
	"encouraged": {}, "engineer": {}, "engineered": {}, "enhance": {}, "enhanced": {}, "evaluate": {},
	"evaluated": {}, "examine": {}, "examined": {}, "execute": {}, "executed": {}, "expand": {},
	"expanded": {}, "facilitate": {}, "facilitated": {}, "forecast": {}, "forecasted": {},
	"formulate": {}, "formulated": {}, "generate": {}, "generated": {}, "implement": {},
	"implemented": {}, "improve": {}, "improved": {}, "increase": {}, "increased": {},
	"integrate": {}, "integrated": {}, "lead": {}, "led": {}, "launch": {}, "launched": {},
	"manage": {}, "managed": {}, "optimize": {}, "optimized": {}, "organize": {}, "organized": {},
	"oversee": {}, "oversaw": {}, "present": {}, "presented": {}, "resolve": {}, "resolved": {},
	"streamline": {}, "streamlined": {}, "supervise": {}, "supervised": {}, "train": {},
	"trained": {}, "write": {}, "wrote": {},
}
